package note

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gallery/internal/domain"
	"gallery/internal/domain/setting"
)

const (
	KeyNotesPerPage     = "notes_notes_per_page"
	KeyRequestsPerPage  = "notes_requests_per_page"
	KeyHistoriesPerPage = "notes_histories_per_page"

	defaultPerPage = 20
)

type Service interface {
	Create(ctx context.Context, viewer domain.Viewer, in Input) (int64, error)
	Update(ctx context.Context, viewer domain.Viewer, in Input) error
	Delete(ctx context.Context, viewer domain.Viewer, imageID, noteID int64) error
	NukeNotes(ctx context.Context, viewer domain.Viewer, imageID int64) error
	Request(ctx context.Context, viewer domain.Viewer, imageID int64) error
	NukeRequests(ctx context.Context, viewer domain.Viewer, imageID int64) error
	Revert(ctx context.Context, viewer domain.Viewer, noteID int64, reviewID int) error

	ForImage(ctx context.Context, imageID int64) ([]Note, error)
	List(ctx context.Context, page int) (ImagePage, error)
	Requests(ctx context.Context, page int) (ImagePage, error)
	Updated(ctx context.Context, page int) (HistoryPage, error)
	History(ctx context.Context, noteID int64, page int) (HistoryPage, error)
	ImageHistory(ctx context.Context, imageID int64, page int) (HistoryPage, error)
}

type service struct {
	uow      domain.UnitOfWork
	notes    Repository
	settings setting.Store
	log      *zap.Logger
}

func NewService(uow domain.UnitOfWork, notes Repository, settings setting.Store, log *zap.Logger) Service {
	return &service{
		uow:      uow,
		notes:    notes,
		settings: settings,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, viewer domain.Viewer, in Input) (int64, error) {
	if viewer.Anonymous() {
		return 0, domain.PermissionDenied("anonymous users cannot add notes")
	}
	if in.ImageID <= 0 {
		return 0, domain.BadRequest("image_id is required")
	}

	var id int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.notes.Create(ctx, Note{
			ImageID:  in.ImageID,
			UserID:   viewer.ID,
			UserIP:   viewer.IP,
			Enabled:  true,
			Geometry: in.Geometry,
			Text:     in.Text,
		})
		if err != nil {
			return err
		}
		if err := s.notes.RecountImage(ctx, in.ImageID); err != nil {
			return err
		}
		return s.notes.AddHistory(ctx, history(viewer, id, in.ImageID, true, in.Geometry, in.Text))
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("note added", zap.Int64("note_id", id), zap.Int64("user_id", viewer.ID))
	return id, nil
}

// Update ignores edits that would leave the note empty.
func (s *service) Update(ctx context.Context, viewer domain.Viewer, in Input) error {
	if viewer.Anonymous() {
		return domain.PermissionDenied("anonymous users cannot edit notes")
	}
	if in.Text == "" {
		return nil
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		err := s.notes.Update(ctx, Note{
			ID:       in.NoteID,
			ImageID:  in.ImageID,
			Geometry: in.Geometry,
			Text:     in.Text,
		})
		if err != nil {
			return err
		}
		return s.notes.AddHistory(ctx, history(viewer, in.NoteID, in.ImageID, true, in.Geometry, in.Text))
	})
}

func (s *service) Delete(ctx context.Context, viewer domain.Viewer, imageID, noteID int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can delete notes")
	}
	if err := s.notes.SetEnabled(ctx, imageID, noteID, false); err != nil {
		return err
	}
	s.log.Info("note deleted", zap.Int64("note_id", noteID), zap.Int64("user_id", viewer.ID))
	return nil
}

func (s *service) NukeNotes(ctx context.Context, viewer domain.Viewer, imageID int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can delete notes")
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.notes.NukeNotes(ctx, imageID); err != nil {
			return err
		}
		return s.notes.RecountImage(ctx, imageID)
	})
}

func (s *service) Request(ctx context.Context, viewer domain.Viewer, imageID int64) error {
	if viewer.Anonymous() {
		return domain.PermissionDenied("anonymous users cannot request notes")
	}
	id, err := s.notes.AddRequest(ctx, imageID, viewer.ID)
	if err != nil {
		return err
	}
	s.log.Info("note requested", zap.Int64("request_id", id), zap.Int64("user_id", viewer.ID))
	return nil
}

func (s *service) NukeRequests(ctx context.Context, viewer domain.Viewer, imageID int64) error {
	if !viewer.Admin {
		return domain.PermissionDenied("only admins can delete note requests")
	}
	return s.notes.NukeRequests(ctx, imageID)
}

// Revert restores a past revision, re-enabling the note if it was deleted,
// and records the restore as a new revision.
func (s *service) Revert(ctx context.Context, viewer domain.Viewer, noteID int64, reviewID int) error {
	if viewer.Anonymous() {
		return domain.PermissionDenied("anonymous users cannot edit notes")
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context) error {
		h, err := s.notes.GetHistory(ctx, noteID, reviewID)
		if err != nil {
			return err
		}
		if err := s.notes.Update(ctx, Note{ID: noteID, ImageID: h.ImageID, Geometry: h.Geometry, Text: h.Text}); err != nil {
			return err
		}
		if err := s.notes.SetEnabled(ctx, h.ImageID, noteID, true); err != nil {
			return err
		}
		return s.notes.AddHistory(ctx, history(viewer, noteID, h.ImageID, h.Enabled, h.Geometry, h.Text))
	})
}

func (s *service) ForImage(ctx context.Context, imageID int64) ([]Note, error) {
	return s.notes.ForImage(ctx, imageID)
}

func (s *service) List(ctx context.Context, page int) (ImagePage, error) {
	per := s.perPage(KeyNotesPerPage)
	page = max(page, 1)
	ids, total, err := s.notes.ImagesWithNotes(ctx, per, (page-1)*per)
	if err != nil {
		return ImagePage{}, err
	}
	return ImagePage{ImageIDs: ids, Page: page, TotalPages: pages(total, per)}, nil
}

func (s *service) Requests(ctx context.Context, page int) (ImagePage, error) {
	per := s.perPage(KeyRequestsPerPage)
	page = max(page, 1)
	ids, total, err := s.notes.RequestedImages(ctx, per, (page-1)*per)
	if err != nil {
		return ImagePage{}, err
	}
	return ImagePage{ImageIDs: ids, Page: page, TotalPages: pages(total, per)}, nil
}

func (s *service) Updated(ctx context.Context, page int) (HistoryPage, error) {
	return s.histories(ctx, HistoryFilter{}, page, "")
}

func (s *service) History(ctx context.Context, noteID int64, page int) (HistoryPage, error) {
	return s.histories(ctx, HistoryFilter{NoteID: noteID}, page, fmt.Sprintf("no note history for note #%d was found", noteID))
}

func (s *service) ImageHistory(ctx context.Context, imageID int64, page int) (HistoryPage, error) {
	return s.histories(ctx, HistoryFilter{ImageID: imageID}, page, fmt.Sprintf("no note history for post #%d was found", imageID))
}

// histories reports notFound when the filter matches nothing, unless
// notFound is empty.
func (s *service) histories(ctx context.Context, f HistoryFilter, page int, notFound string) (HistoryPage, error) {
	per := s.perPage(KeyHistoriesPerPage)
	page = max(page, 1)
	hs, total, err := s.notes.Histories(ctx, f, per, (page-1)*per)
	if err != nil {
		return HistoryPage{}, err
	}
	if total == 0 && notFound != "" {
		return HistoryPage{}, domain.NotFound(notFound)
	}
	return HistoryPage{Histories: hs, Page: page, TotalPages: pages(total, per)}, nil
}

func (s *service) perPage(key string) int {
	if n := s.settings.GetInt(key); n > 0 {
		return n
	}
	return defaultPerPage
}

func pages(total, per int) int {
	return (total + per - 1) / per
}

func history(viewer domain.Viewer, noteID, imageID int64, enabled bool, g Geometry, text string) History {
	return History{
		NoteID:   noteID,
		ImageID:  imageID,
		UserID:   viewer.ID,
		UserIP:   viewer.IP,
		Enabled:  enabled,
		Geometry: g,
		Text:     text,
	}
}
