package domain

import "context"

// Viewer is the user on whose behalf a request runs. ID 0 is anonymous.
type Viewer struct {
	ID    int64
	IP    string
	Admin bool
}

func (v Viewer) Anonymous() bool { return v.ID == 0 }

// CanActAs reports whether the viewer may change data owned by userID.
func (v Viewer) CanActAs(userID int64) bool {
	return v.Admin || (!v.Anonymous() && v.ID == userID)
}

type viewerKey struct{}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func ViewerFrom(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}
