package post

import (
	"context"

	"gallery/internal/domain/media"
)

type Repository interface {
	Create(ctx context.Context, p Post) (Post, error)
	GetByID(ctx context.Context, id int64) (Post, error)
	GetByHash(ctx context.Context, hash string) (Post, error)
	Delete(ctx context.Context, id int64) error
	ListMedia(ctx context.Context, afterID int64, limit int) ([]media.Image, error)
}
