package biography

import (
	"context"

	"go.uber.org/zap"

	"gallery/internal/domain"
)

const settingName = "biography"

// UserConfig stores per-user settings.
type UserConfig interface {
	Get(ctx context.Context, userID int64, name string) (string, error)
	Set(ctx context.Context, userID int64, name, value string) error
	DeleteAll(ctx context.Context, userID int64) error
}

type Service interface {
	Get(ctx context.Context, userID int64) (string, error)
	Set(ctx context.Context, viewer domain.Viewer, userID int64, bio string) error
}

type service struct {
	config UserConfig
	log    *zap.Logger
}

func NewService(config UserConfig, log *zap.Logger) Service {
	return &service{config: config, log: log}
}

func (s *service) Get(ctx context.Context, userID int64) (string, error) {
	return s.config.Get(ctx, userID, settingName)
}

func (s *service) Set(ctx context.Context, viewer domain.Viewer, userID int64, bio string) error {
	if !viewer.CanActAs(userID) {
		return domain.PermissionDenied("you do not have permission to edit this user's biography")
	}
	if err := s.config.Set(ctx, userID, settingName, bio); err != nil {
		return err
	}
	s.log.Info("biography updated", zap.Int64("user_id", userID), zap.Int64("by", viewer.ID))
	return nil
}

type Part struct {
	Text     string `json:"text"`
	Editable bool   `json:"editable"`
}

// Listener shows the biography on user pages and forgets it when the user
// is deleted.
type Listener struct {
	config UserConfig
}

func NewListener(config UserConfig) *Listener {
	return &Listener{config: config}
}

func (l *Listener) Name() string { return "biography" }

func (l *Listener) ReceiveEvent(ctx context.Context, e domain.Event) error {
	switch ev := e.(type) {
	case *domain.UserPageBuildingEvent:
		bio, err := l.config.Get(ctx, ev.DisplayUserID, settingName)
		if err != nil {
			return err
		}
		ev.AddPart(settingName, Part{Text: bio, Editable: ev.Viewer.CanActAs(ev.DisplayUserID)})
	case *domain.UserDeletionEvent:
		return l.config.DeleteAll(ctx, ev.UserID)
	}
	return nil
}
