package thumb

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"gallery/internal/domain/media"
)

type Catalog interface {
	// ListMedia returns up to limit images with ID > afterID, ordered by ID.
	ListMedia(ctx context.Context, afterID int64, limit int) ([]media.Image, error)
}

// Submitter queues a task; false means the task was refused and will not run.
type Submitter interface {
	Submit(task func(ctx context.Context)) bool
}

type ThumbCreator interface {
	CreateImageThumb(ctx context.Context, img media.Image, engine string) error
}

const regeneratePageSize = 100

var ErrPoolClosed = errors.New("thumb: regeneration pool is closed")

// Regenerator rebuilds every thumbnail on a worker pool.
type Regenerator struct {
	catalog Catalog
	thumbs  ThumbCreator
	pool    Submitter
	log     *zap.Logger

	failed atomic.Int64
}

func NewRegenerator(catalog Catalog, thumbs ThumbCreator, pool Submitter, log *zap.Logger) *Regenerator {
	return &Regenerator{
		catalog: catalog,
		thumbs:  thumbs,
		pool:    pool,
		log:     log,
	}
}

// RegenerateAll submits one task per image and returns the number
// submitted. It does not wait for the tasks to finish.
func (r *Regenerator) RegenerateAll(ctx context.Context) (int, error) {
	var (
		after     int64
		submitted int
	)

	for {
		page, err := r.catalog.ListMedia(ctx, after, regeneratePageSize)
		if err != nil {
			return submitted, err
		}
		if len(page) == 0 {
			break
		}

		for _, img := range page {
			if err := ctx.Err(); err != nil {
				return submitted, err
			}
			ok := r.pool.Submit(func(ctx context.Context) {
				if err := r.thumbs.CreateImageThumb(ctx, img, ""); err != nil {
					r.failed.Add(1)
					r.log.Warn("thumbnail regeneration failed",
						zap.Int64("image_id", img.ID),
						zap.String("hash", img.Hash),
						zap.Error(err),
					)
				}
			})
			if !ok {
				return submitted, ErrPoolClosed
			}
			submitted++
		}
		after = page[len(page)-1].ID
	}

	r.log.Info("thumbnail regeneration submitted", zap.Int("images", submitted))
	return submitted, nil
}

// Failed counts tasks that have failed so far.
func (r *Regenerator) Failed() int64 { return r.failed.Load() }
