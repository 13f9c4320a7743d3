package pg

import (
	"context"
	"database/sql"

	"gallery/internal/domain/note"
)

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, n note.Note) (int64, error) {
	var id int64
	err := queryRow(ctx, r.db,
		`INSERT INTO notes (enabled, image_id, user_id, user_ip, x1, y1, height, width, note)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		n.Enabled, n.ImageID, n.UserID, n.UserIP, n.X1, n.Y1, n.Height, n.Width, n.Text,
	).Scan(&id)
	return id, err
}

func (r *NoteRepository) Update(ctx context.Context, n note.Note) error {
	res, err := exec(ctx, r.db,
		`UPDATE notes
		    SET x1 = $3, y1 = $4, height = $5, width = $6, note = $7
		  WHERE id = $1 AND image_id = $2`,
		n.ID, n.ImageID, n.X1, n.Y1, n.Height, n.Width, n.Text,
	)
	return mustAffect(res, err, "note not found")
}

// SetEnabled also refreshes the image's note count.
func (r *NoteRepository) SetEnabled(ctx context.Context, imageID, noteID int64, enabled bool) error {
	res, err := exec(ctx, r.db,
		`UPDATE notes SET enabled = $3 WHERE id = $2 AND image_id = $1`,
		imageID, noteID, enabled,
	)
	if err := mustAffect(res, err, "note not found"); err != nil {
		return err
	}
	return r.RecountImage(ctx, imageID)
}

func (r *NoteRepository) RecountImage(ctx context.Context, imageID int64) error {
	_, err := exec(ctx, r.db,
		`UPDATE images
		    SET notes = (SELECT COUNT(*) FROM notes WHERE image_id = $1 AND enabled)
		  WHERE id = $1`,
		imageID,
	)
	return err
}

func (r *NoteRepository) NukeNotes(ctx context.Context, imageID int64) error {
	_, err := exec(ctx, r.db, `DELETE FROM notes WHERE image_id = $1`, imageID)
	return err
}

func (r *NoteRepository) ForImage(ctx context.Context, imageID int64) ([]note.Note, error) {
	rows, err := query(ctx, r.db,
		`SELECT id, image_id, user_id, user_ip, date, enabled, x1, y1, height, width, note
		   FROM notes
		  WHERE image_id = $1 AND enabled
		  ORDER BY date, id`,
		imageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []note.Note
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(
			&n.ID, &n.ImageID, &n.UserID, &n.UserIP, &n.Date, &n.Enabled,
			&n.X1, &n.Y1, &n.Height, &n.Width, &n.Text,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NoteRepository) AddRequest(ctx context.Context, imageID, userID int64) (int64, error) {
	var id int64
	err := queryRow(ctx, r.db,
		`INSERT INTO note_request (image_id, user_id) VALUES ($1, $2) RETURNING id`,
		imageID, userID,
	).Scan(&id)
	return id, err
}

func (r *NoteRepository) NukeRequests(ctx context.Context, imageID int64) error {
	_, err := exec(ctx, r.db, `DELETE FROM note_request WHERE image_id = $1`, imageID)
	return err
}

func (r *NoteRepository) AddHistory(ctx context.Context, h note.History) error {
	_, err := exec(ctx, r.db,
		`INSERT INTO note_histories
		        (note_enabled, note_id, review_id, image_id, user_id, user_ip, x1, y1, height, width, note)
		 VALUES ($1, $2,
		        (SELECT COALESCE(MAX(review_id), 0) + 1 FROM note_histories WHERE note_id = $2),
		        $3, $4, $5, $6, $7, $8, $9, $10)`,
		h.Enabled, h.NoteID, h.ImageID, h.UserID, h.UserIP, h.X1, h.Y1, h.Height, h.Width, h.Text,
	)
	return err
}

const historyColumns = `note_id, review_id, image_id, user_id, user_ip, date, note_enabled, x1, y1, height, width, note`

func scanHistory(row interface{ Scan(...any) error }) (note.History, error) {
	var h note.History
	err := row.Scan(
		&h.NoteID, &h.ReviewID, &h.ImageID, &h.UserID, &h.UserIP, &h.Date, &h.Enabled,
		&h.X1, &h.Y1, &h.Height, &h.Width, &h.Text,
	)
	return h, err
}

func (r *NoteRepository) GetHistory(ctx context.Context, noteID int64, reviewID int) (note.History, error) {
	h, err := scanHistory(queryRow(ctx, r.db,
		`SELECT `+historyColumns+` FROM note_histories WHERE note_id = $1 AND review_id = $2`,
		noteID, reviewID,
	))
	if err != nil {
		return note.History{}, notFoundOr(err, "note revision not found")
	}
	return h, nil
}

func (r *NoteRepository) Histories(ctx context.Context, f note.HistoryFilter, limit, offset int) ([]note.History, int, error) {
	const where = ` WHERE ($1::BIGINT = 0 OR note_id = $1) AND ($2::BIGINT = 0 OR image_id = $2)`

	var total int
	if err := queryRow(ctx, r.db,
		`SELECT COUNT(*) FROM note_histories`+where, f.NoteID, f.ImageID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := query(ctx, r.db,
		`SELECT `+historyColumns+` FROM note_histories`+where+`
		  ORDER BY date DESC, id DESC
		  LIMIT $3 OFFSET $4`,
		f.NoteID, f.ImageID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []note.History
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}

func (r *NoteRepository) ImagesWithNotes(ctx context.Context, limit, offset int) ([]int64, int, error) {
	return r.imagePage(ctx, `notes WHERE enabled`, limit, offset)
}

func (r *NoteRepository) RequestedImages(ctx context.Context, limit, offset int) ([]int64, int, error) {
	return r.imagePage(ctx, `note_request`, limit, offset)
}

// imagePage pages through the distinct image ids of source, newest first.
func (r *NoteRepository) imagePage(ctx context.Context, source string, limit, offset int) ([]int64, int, error) {
	var total int
	if err := queryRow(ctx, r.db,
		`SELECT COUNT(DISTINCT image_id) FROM `+source,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := query(ctx, r.db,
		`SELECT DISTINCT image_id FROM `+source+` ORDER BY image_id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, 0, err
		}
		ids = append(ids, id)
	}
	return ids, total, rows.Err()
}
