package score

import (
	"context"
	"time"

	"gallery/internal/domain"
)

const defaultPopularLimit = 24

type Service interface {
	Vote(ctx context.Context, viewer domain.Viewer, imageID int64, score int) error
	Votes(ctx context.Context, imageID int64) ([]Vote, error)
	RemoveVotesOn(ctx context.Context, viewer domain.Viewer, imageID int64) error
	RemoveVotesBy(ctx context.Context, viewer domain.Viewer, userID int64) error
	Popular(ctx context.Context, q PopularQuery) (PopularPage, error)
}

type service struct {
	uow    domain.UnitOfWork
	votes  Repository
	events domain.Dispatcher
	now    func() time.Time
}

func NewService(uow domain.UnitOfWork, votes Repository, events domain.Dispatcher) Service {
	return &service{
		uow:    uow,
		votes:  votes,
		events: events,
		now:    time.Now,
	}
}

// Vote only validates and announces the vote; the listener stores it.
func (s *service) Vote(ctx context.Context, viewer domain.Viewer, imageID int64, score int) error {
	if viewer.Anonymous() {
		return domain.PermissionDenied("anonymous users cannot vote")
	}
	if imageID <= 0 {
		return domain.BadRequest("image_id must be positive")
	}
	if score < -1 || score > 1 {
		return domain.BadRequest("vote must be -1, 0 or 1")
	}

	return s.events.Dispatch(ctx, &SetEvent{ImageID: imageID, UserID: viewer.ID, Score: score})
}

func (s *service) Votes(ctx context.Context, imageID int64) ([]Vote, error) {
	return s.votes.VotesOn(ctx, imageID)
}

func (s *service) RemoveVotesOn(ctx context.Context, viewer domain.Viewer, imageID int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can remove votes")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.votes.DeleteVotesOn(ctx, imageID); err != nil {
			return err
		}
		return s.votes.Recount(ctx, imageID)
	})
}

func (s *service) RemoveVotesBy(ctx context.Context, viewer domain.Viewer, userID int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can remove votes")
	}
	return deleteVotesBy(ctx, s.uow, s.votes, userID)
}

func (s *service) Popular(ctx context.Context, q PopularQuery) (PopularPage, error) {
	today := s.now()
	year, month, day := today.Year(), int(today.Month()), today.Day()
	if q.Year != 0 {
		year = clamp(q.Year, 1970, 2100)
	}
	if q.Month != 0 {
		month = clamp(q.Month, 1, 12)
	}
	if q.Day != 0 {
		day = clamp(q.Day, 1, 31)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	page := PopularPage{Period: q.Period}
	var end time.Time
	switch q.Period {
	case PeriodDay:
		page.Start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		end = page.Start.AddDate(0, 0, 1)
		page.Previous = page.Start.AddDate(0, 0, -1)
		page.Title = page.Start.Format("January 2, 2006")
	case PeriodMonth:
		page.Start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end = page.Start.AddDate(0, 1, 0)
		page.Previous = page.Start.AddDate(0, -1, 0)
		page.Title = page.Start.Format("January 2006")
	case PeriodYear:
		page.Start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = page.Start.AddDate(1, 0, 0)
		page.Previous = page.Start.AddDate(-1, 0, 0)
		page.Title = page.Start.Format("2006")
	default:
		return PopularPage{}, domain.BadRequest("unknown period " + string(q.Period))
	}
	page.Next = end

	posts, err := s.votes.Popular(ctx, page.Start, end, limit)
	if err != nil {
		return PopularPage{}, err
	}
	page.Posts = posts
	return page, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
