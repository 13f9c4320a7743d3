package pg

import (
	"context"
	"database/sql"

	"gallery/internal/domain/setting"
)

type SettingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Load(ctx context.Context) (setting.Map, error) {
	rows, err := query(ctx, r.db, `SELECT name, value FROM config`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := setting.Map{}
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		m[name] = value
	}
	return m, rows.Err()
}

func (r *SettingRepository) Set(ctx context.Context, name, value string) error {
	_, err := exec(ctx, r.db,
		`INSERT INTO config (name, value)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`,
		name, value,
	)
	return err
}
