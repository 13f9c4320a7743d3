package handler

import (
	"context"

	"go.uber.org/zap"

	"gallery/internal/domain/biography"
	"gallery/internal/domain/blotter"
	"gallery/internal/domain/nav"
	"gallery/internal/domain/note"
	"gallery/internal/domain/post"
	"gallery/internal/domain/score"
	"gallery/internal/domain/setting"
	"gallery/internal/domain/user"
)

// Regenerator rebuilds every thumbnail in the background.
type Regenerator interface {
	RegenerateAll(ctx context.Context) (int, error)
}

type Handler struct {
	PostSvc     post.Service
	ScoreSvc    score.Service
	NoteSvc     note.Service
	BlotterSvc  blotter.Service
	BioSvc      biography.Service
	UserSvc     user.Service
	NavSvc      nav.Service
	SettingSvc  setting.Service
	Regenerator Regenerator
	Log         *zap.Logger
}
