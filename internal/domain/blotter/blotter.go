package blotter

import (
	"context"
	"strings"
	"time"

	"gallery/internal/domain"
)

type Entry struct {
	ID        int64
	Date      time.Time
	Text      string
	Important bool
}

type Repository interface {
	Add(ctx context.Context, text string, important bool) (Entry, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

const defaultListLimit = 50

type Service interface {
	Add(ctx context.Context, viewer domain.Viewer, text string, important bool) (Entry, error)
	Remove(ctx context.Context, viewer domain.Viewer, id int64) error
	List(ctx context.Context) ([]Entry, error)
}

type service struct {
	entries Repository
}

func NewService(entries Repository) Service {
	return &service{entries: entries}
}

func (s *service) Add(ctx context.Context, viewer domain.Viewer, text string, important bool) (Entry, error) {
	if !viewer.Admin {
		return Entry{}, domain.PermissionDenied("only admins can edit the blotter")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, domain.BadRequest("entry text is required")
	}
	return s.entries.Add(ctx, text, important)
}

func (s *service) Remove(ctx context.Context, viewer domain.Viewer, id int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can edit the blotter")
	}
	return s.entries.Remove(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	return s.entries.List(ctx, defaultListLimit)
}

type Listener struct{}

func (Listener) Name() string { return "blotter" }

func (Listener) ReceiveEvent(_ context.Context, e domain.Event) error {
	if ev, ok := e.(*domain.PageNavBuildingEvent); ok {
		ev.AddNavLink("/blotter", "Blotter", "system")
	}
	return nil
}
