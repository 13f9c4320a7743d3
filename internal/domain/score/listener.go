package score

import (
	"context"

	"go.uber.org/zap"

	"gallery/internal/domain"
)

// recountChunk bounds how many images one recount statement touches.
const recountChunk = 100

// Listener stores votes and keeps scores consistent when posts or users go.
type Listener struct {
	uow   domain.UnitOfWork
	votes Repository
	log   *zap.Logger
}

var _ domain.Listener = (*Listener)(nil)

func NewListener(uow domain.UnitOfWork, votes Repository, log *zap.Logger) *Listener {
	return &Listener{uow: uow, votes: votes, log: log}
}

func (l *Listener) Name() string { return "numeric_score" }

func (l *Listener) ReceiveEvent(ctx context.Context, e domain.Event) error {
	switch ev := e.(type) {
	case *SetEvent:
		l.log.Debug("rated post",
			zap.Int64("image_id", ev.ImageID),
			zap.Int64("user_id", ev.UserID),
			zap.Int("score", ev.Score),
		)
		return l.uow.WithinTx(ctx, func(ctx context.Context) error {
			if err := l.votes.SetVote(ctx, ev.ImageID, ev.UserID, ev.Score); err != nil {
				return err
			}
			return l.votes.Recount(ctx, ev.ImageID)
		})

	case *domain.ImageDeletionEvent:
		return l.votes.DeleteVotesOn(ctx, ev.ImageID)

	case *domain.UserDeletionEvent:
		return deleteVotesBy(ctx, l.uow, l.votes, ev.UserID)

	case *domain.PageSubNavBuildingEvent:
		if ev.Parent == "posts" {
			ev.AddNavLink("/popular_by_day", "Popular by Day")
			ev.AddNavLink("/popular_by_month", "Popular by Month")
			ev.AddNavLink("/popular_by_year", "Popular by Year")
		}

	case *domain.UserPageBuildingEvent:
		up, err := l.votes.CountVotesBy(ctx, ev.DisplayUserID, 1)
		if err != nil {
			return err
		}
		down, err := l.votes.CountVotesBy(ctx, ev.DisplayUserID, -1)
		if err != nil {
			return err
		}
		ev.AddPart("votes", map[string]int{"upvotes": up, "downvotes": down})
	}
	return nil
}

// deleteVotesBy removes a user's votes and recounts the affected images
// a chunk at a time.
func deleteVotesBy(ctx context.Context, uow domain.UnitOfWork, votes Repository, userID int64) error {
	ids, err := votes.ImagesVotedBy(ctx, userID)
	if err != nil {
		return err
	}

	for start := 0; start < len(ids); start += recountChunk {
		chunk := ids[start:min(start+recountChunk, len(ids))]
		err := uow.WithinTx(ctx, func(ctx context.Context) error {
			if err := votes.DeleteVotesBy(ctx, userID, chunk); err != nil {
				return err
			}
			return votes.Recount(ctx, chunk...)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
