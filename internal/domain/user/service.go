package user

import (
	"context"

	"gallery/internal/domain"
)

type Service interface {
	// Page assembles the parts of a user's profile page.
	Page(ctx context.Context, viewer domain.Viewer, userID int64) ([]domain.UserPagePart, error)
	Delete(ctx context.Context, viewer domain.Viewer, userID int64) error
}

type service struct {
	uow    domain.UnitOfWork
	events domain.Dispatcher
}

func NewService(uow domain.UnitOfWork, events domain.Dispatcher) Service {
	return &service{
		uow:    uow,
		events: events,
	}
}

func (s *service) Page(ctx context.Context, viewer domain.Viewer, userID int64) ([]domain.UserPagePart, error) {
	if userID <= 0 {
		return nil, domain.BadRequest("user id must be positive")
	}

	ev := &domain.UserPageBuildingEvent{DisplayUserID: userID, Viewer: viewer}
	if err := s.events.Dispatch(ctx, ev); err != nil {
		return nil, err
	}
	return ev.Parts, nil
}

func (s *service) Delete(ctx context.Context, viewer domain.Viewer, userID int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can delete users")
	}
	if userID <= 0 {
		return domain.BadRequest("user id must be positive")
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.events.Dispatch(ctx, &domain.UserDeletionEvent{UserID: userID})
	})
}
