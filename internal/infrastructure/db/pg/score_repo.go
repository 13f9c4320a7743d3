package pg

import (
	"context"
	"database/sql"
	"time"

	"gallery/internal/domain/score"
)

type ScoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) SetVote(ctx context.Context, imageID, userID int64, value int) error {
	if value == 0 {
		_, err := exec(ctx, r.db,
			`DELETE FROM numeric_score_votes WHERE image_id = $1 AND user_id = $2`,
			imageID, userID,
		)
		return err
	}
	_, err := exec(ctx, r.db,
		`INSERT INTO numeric_score_votes (image_id, user_id, score)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (image_id, user_id) DO UPDATE SET score = EXCLUDED.score`,
		imageID, userID, value,
	)
	return err
}

func (r *ScoreRepository) Recount(ctx context.Context, imageIDs ...int64) error {
	if len(imageIDs) == 0 {
		return nil
	}
	_, err := exec(ctx, r.db,
		`UPDATE images
		    SET numeric_score = COALESCE(
		        (SELECT SUM(score) FROM numeric_score_votes v WHERE v.image_id = images.id), 0)
		  WHERE id = ANY($1)`,
		imageIDs,
	)
	return err
}

func (r *ScoreRepository) VotesOn(ctx context.Context, imageID int64) ([]score.Vote, error) {
	rows, err := query(ctx, r.db,
		`SELECT image_id, user_id, score
		   FROM numeric_score_votes
		  WHERE image_id = $1
		  ORDER BY user_id`,
		imageID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []score.Vote
	for rows.Next() {
		var v score.Vote
		if err := rows.Scan(&v.ImageID, &v.UserID, &v.Score); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ScoreRepository) DeleteVotesOn(ctx context.Context, imageID int64) error {
	_, err := exec(ctx, r.db, `DELETE FROM numeric_score_votes WHERE image_id = $1`, imageID)
	return err
}

func (r *ScoreRepository) ImagesVotedBy(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := query(ctx, r.db,
		`SELECT image_id FROM numeric_score_votes WHERE user_id = $1 ORDER BY image_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ScoreRepository) DeleteVotesBy(ctx context.Context, userID int64, imageIDs []int64) error {
	_, err := exec(ctx, r.db,
		`DELETE FROM numeric_score_votes WHERE user_id = $1 AND image_id = ANY($2)`,
		userID, imageIDs,
	)
	return err
}

func (r *ScoreRepository) CountVotesBy(ctx context.Context, userID int64, value int) (int, error) {
	var n int
	err := queryRow(ctx, r.db,
		`SELECT COUNT(*) FROM numeric_score_votes WHERE user_id = $1 AND score = $2`,
		userID, value,
	).Scan(&n)
	return n, err
}

func (r *ScoreRepository) Popular(ctx context.Context, from, to time.Time, limit int) ([]score.Ranked, error) {
	rows, err := query(ctx, r.db,
		`SELECT id, numeric_score
		   FROM images
		  WHERE posted >= $1 AND posted < $2 AND numeric_score > 0
		  ORDER BY numeric_score DESC, id DESC
		  LIMIT $3`,
		from, to, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []score.Ranked
	for rows.Next() {
		var p score.Ranked
		if err := rows.Scan(&p.ImageID, &p.Score); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
