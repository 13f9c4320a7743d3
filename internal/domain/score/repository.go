package score

import (
	"context"
	"time"
)

type Repository interface {
	// SetVote replaces userID's vote on imageID; score 0 only deletes.
	SetVote(ctx context.Context, imageID, userID int64, score int) error
	// Recount sets images.numeric_score to the sum of votes.
	Recount(ctx context.Context, imageIDs ...int64) error
	VotesOn(ctx context.Context, imageID int64) ([]Vote, error)
	DeleteVotesOn(ctx context.Context, imageID int64) error
	ImagesVotedBy(ctx context.Context, userID int64) ([]int64, error)
	DeleteVotesBy(ctx context.Context, userID int64, imageIDs []int64) error
	CountVotesBy(ctx context.Context, userID int64, score int) (int, error)
	Popular(ctx context.Context, from, to time.Time, limit int) ([]Ranked, error)
}
