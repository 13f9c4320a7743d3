package pg

import (
	"context"
	"database/sql"

	"gallery/internal/domain/blotter"
)

type BlotterRepository struct {
	db *sql.DB
}

func NewBlotterRepository(db *sql.DB) *BlotterRepository {
	return &BlotterRepository{db: db}
}

func (r *BlotterRepository) Add(ctx context.Context, text string, important bool) (blotter.Entry, error) {
	e := blotter.Entry{Text: text, Important: important}
	err := queryRow(ctx, r.db,
		`INSERT INTO blotter (entry_text, important)
		 VALUES ($1, $2)
		 RETURNING id, entry_date`,
		text, important,
	).Scan(&e.ID, &e.Date)
	if err != nil {
		return blotter.Entry{}, err
	}
	return e, nil
}

func (r *BlotterRepository) Remove(ctx context.Context, id int64) error {
	res, err := exec(ctx, r.db, `DELETE FROM blotter WHERE id = $1`, id)
	return mustAffect(res, err, "blotter entry not found")
}

func (r *BlotterRepository) List(ctx context.Context, limit int) ([]blotter.Entry, error) {
	rows, err := query(ctx, r.db,
		`SELECT id, entry_date, entry_text, important
		   FROM blotter
		  ORDER BY entry_date DESC, id DESC
		  LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []blotter.Entry
	for rows.Next() {
		var e blotter.Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Text, &e.Important); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
