package nav

import (
	"context"

	"gallery/internal/domain"
)

// Service collects navigation links from whichever listeners contribute
// them.
type Service interface {
	Links(ctx context.Context) ([]domain.NavLink, error)
	SubLinks(ctx context.Context, parent string) ([]domain.NavLink, error)
}

type service struct {
	events domain.Dispatcher
}

func NewService(events domain.Dispatcher) Service {
	return &service{events: events}
}

func (s *service) Links(ctx context.Context) ([]domain.NavLink, error) {
	ev := &domain.PageNavBuildingEvent{}
	if err := s.events.Dispatch(ctx, ev); err != nil {
		return nil, err
	}
	return ev.Links, nil
}

func (s *service) SubLinks(ctx context.Context, parent string) ([]domain.NavLink, error) {
	ev := &domain.PageSubNavBuildingEvent{Parent: parent}
	if err := s.events.Dispatch(ctx, ev); err != nil {
		return nil, err
	}
	return ev.Links, nil
}
