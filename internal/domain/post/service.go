package post

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"gallery/internal/domain"
	"gallery/internal/domain/media"
	"gallery/internal/domain/thumb"
)

const MaxUploadSize = 50 << 20

type ThumbCreator interface {
	CreateImageThumb(ctx context.Context, img media.Image, engine string) error
}

type SizePolicy interface {
	ThumbnailSize(origW, origH int, useDPIScaling bool) thumb.Size
}

// View is a post with the size its thumbnail is displayed at.
type View struct {
	Post  Post
	Thumb thumb.Size
}

type UploadResult struct {
	Post Post
	// ThumbError is set when the post was stored but its thumbnail was not.
	ThumbError error
}

type Service interface {
	Upload(ctx context.Context, viewer domain.Viewer, filename string, r io.Reader) (UploadResult, error)
	Get(ctx context.Context, id int64) (View, error)
	Delete(ctx context.Context, viewer domain.Viewer, id int64) error
	RegenerateThumb(ctx context.Context, viewer domain.Viewer, id int64) error
}

type service struct {
	uow       domain.UnitOfWork
	posts     Repository
	events    domain.Dispatcher
	thumbs    ThumbCreator
	sizes     SizePolicy
	warehouse media.Warehouse
}

func NewService(
	uow domain.UnitOfWork,
	posts Repository,
	events domain.Dispatcher,
	thumbs ThumbCreator,
	sizes SizePolicy,
	warehouse media.Warehouse,
) Service {
	return &service{
		uow:       uow,
		posts:     posts,
		events:    events,
		thumbs:    thumbs,
		sizes:     sizes,
		warehouse: warehouse,
	}
}

func (s *service) Upload(ctx context.Context, viewer domain.Viewer, filename string, r io.Reader) (UploadResult, error) {
	if viewer.Anonymous() {
		return UploadResult{}, domain.PermissionDenied("anonymous users cannot upload")
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return UploadResult{}, domain.BadRequest("empty upload")
	}
	if len(data) > MaxUploadSize {
		return UploadResult{}, domain.BadRequest("upload is too large")
	}

	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return UploadResult{}, domain.BadRequest("unsupported file type " + mime)
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])

	if existing, err := s.posts.GetByHash(ctx, hash); err == nil {
		return UploadResult{}, domain.Conflict(fmt.Sprintf("file already uploaded as post %d", existing.ID))
	} else if !isNotFound(err) {
		return UploadResult{}, err
	}

	// Unknown dimensions are stored as 0; thumbnail sizing copes with that.
	var width, height int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	size, err := s.warehouse.StoreImage(hash, bytes.NewReader(data))
	if err != nil {
		return UploadResult{}, err
	}

	created, err := s.posts.Create(ctx, Post{
		Hash:     hash,
		Filename: filename,
		Mime:     mime,
		Width:    width,
		Height:   height,
		Filesize: size,
	})
	if err != nil {
		_ = s.warehouse.Remove(hash)
		return UploadResult{}, err
	}

	res := UploadResult{Post: created}
	res.ThumbError = s.thumbs.CreateImageThumb(ctx, created.Media(), "")
	return res, nil
}

func (s *service) Get(ctx context.Context, id int64) (View, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	return View{
		Post:  p,
		Thumb: s.sizes.ThumbnailSize(p.Width, p.Height, false),
	}, nil
}

// Delete lets every extension clean up before the row and files go away.
func (s *service) Delete(ctx context.Context, viewer domain.Viewer, id int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can delete posts")
	}

	var hash string
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.posts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		hash = p.Hash

		if err := s.events.Dispatch(ctx, &domain.ImageDeletionEvent{ImageID: p.ID, Hash: p.Hash}); err != nil {
			return err
		}
		return s.posts.Delete(ctx, p.ID)
	})
	if err != nil {
		return err
	}

	return s.warehouse.Remove(hash)
}

func (s *service) RegenerateThumb(ctx context.Context, viewer domain.Viewer, id int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can regenerate thumbnails")
	}

	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.thumbs.CreateImageThumb(ctx, p.Media(), "")
}

func isNotFound(err error) bool {
	var de *domain.DomainError
	return errors.As(err, &de) && de.Code == domain.ErrorCodeNotFound
}
