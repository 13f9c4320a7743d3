package pg

import (
	"context"
	"database/sql"

	"gallery/internal/domain/media"
	"gallery/internal/domain/post"
)

const postColumns = `id, hash, filename, mime, width, height, filesize, posted, numeric_score, notes`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, p post.Post) (post.Post, error) {
	err := queryRow(ctx, r.db,
		`INSERT INTO images (hash, filename, mime, width, height, filesize)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, posted`,
		p.Hash, p.Filename, p.Mime, p.Width, p.Height, p.Filesize,
	).Scan(&p.ID, &p.Posted)
	if err != nil {
		return post.Post{}, err
	}
	return p, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (post.Post, error) {
	return r.getOne(ctx, `SELECT `+postColumns+` FROM images WHERE id = $1`, id)
}

func (r *PostRepository) GetByHash(ctx context.Context, hash string) (post.Post, error) {
	return r.getOne(ctx, `SELECT `+postColumns+` FROM images WHERE hash = $1`, hash)
}

func (r *PostRepository) getOne(ctx context.Context, q string, arg any) (post.Post, error) {
	var p post.Post
	err := queryRow(ctx, r.db, q, arg).Scan(
		&p.ID, &p.Hash, &p.Filename, &p.Mime, &p.Width, &p.Height,
		&p.Filesize, &p.Posted, &p.NumericScore, &p.Notes,
	)
	if err != nil {
		return post.Post{}, notFoundOr(err, "post not found")
	}
	return p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := exec(ctx, r.db, `DELETE FROM images WHERE id = $1`, id)
	return mustAffect(res, err, "post not found")
}

func (r *PostRepository) ListMedia(ctx context.Context, afterID int64, limit int) ([]media.Image, error) {
	rows, err := query(ctx, r.db,
		`SELECT id, hash, mime, width, height
		   FROM images
		  WHERE id > $1
		  ORDER BY id
		  LIMIT $2`,
		afterID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []media.Image
	for rows.Next() {
		var img media.Image
		if err := rows.Scan(&img.ID, &img.Hash, &img.Mime, &img.Width, &img.Height); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}
