package note

import "context"

type Repository interface {
	Create(ctx context.Context, n Note) (int64, error)
	Update(ctx context.Context, n Note) error
	SetEnabled(ctx context.Context, imageID, noteID int64, enabled bool) error
	RecountImage(ctx context.Context, imageID int64) error
	NukeNotes(ctx context.Context, imageID int64) error
	ForImage(ctx context.Context, imageID int64) ([]Note, error)

	AddRequest(ctx context.Context, imageID, userID int64) (int64, error)
	NukeRequests(ctx context.Context, imageID int64) error

	// AddHistory stores h with the next review number for its note.
	AddHistory(ctx context.Context, h History) error
	GetHistory(ctx context.Context, noteID int64, reviewID int) (History, error)
	Histories(ctx context.Context, f HistoryFilter, limit, offset int) ([]History, int, error)

	ImagesWithNotes(ctx context.Context, limit, offset int) ([]int64, int, error)
	RequestedImages(ctx context.Context, limit, offset int) ([]int64, int, error)
}
