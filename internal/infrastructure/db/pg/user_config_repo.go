package pg

import (
	"context"
	"database/sql"
	"errors"
)

type UserConfigRepository struct {
	db *sql.DB
}

func NewUserConfigRepository(db *sql.DB) *UserConfigRepository {
	return &UserConfigRepository{db: db}
}

// Get returns "" for a setting the user never stored.
func (r *UserConfigRepository) Get(ctx context.Context, userID int64, name string) (string, error) {
	var value string
	err := queryRow(ctx, r.db,
		`SELECT value FROM user_config WHERE user_id = $1 AND name = $2`,
		userID, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (r *UserConfigRepository) Set(ctx context.Context, userID int64, name, value string) error {
	_, err := exec(ctx, r.db,
		`INSERT INTO user_config (user_id, name, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, name) DO UPDATE SET value = EXCLUDED.value`,
		userID, name, value,
	)
	return err
}

func (r *UserConfigRepository) DeleteAll(ctx context.Context, userID int64) error {
	_, err := exec(ctx, r.db, `DELETE FROM user_config WHERE user_id = $1`, userID)
	return err
}
