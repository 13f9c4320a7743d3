package note_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"gallery/internal/domain"
	"gallery/internal/domain/note"
	"gallery/internal/domain/setting"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noteRepoFake struct {
	notes     map[int64]note.Note
	histories []note.History
	requests  []note.Request
	counts    map[int64]int
	nextID    int64
}

func newNoteRepoFake() *noteRepoFake {
	return &noteRepoFake{notes: map[int64]note.Note{}, counts: map[int64]int{}}
}

func (r *noteRepoFake) Create(_ context.Context, n note.Note) (int64, error) {
	r.nextID++
	n.ID = r.nextID
	r.notes[n.ID] = n
	return n.ID, nil
}

func (r *noteRepoFake) Update(_ context.Context, n note.Note) error {
	cur, ok := r.notes[n.ID]
	if !ok || cur.ImageID != n.ImageID {
		return domain.NotFound("note not found")
	}
	cur.Geometry, cur.Text = n.Geometry, n.Text
	r.notes[n.ID] = cur
	return nil
}

func (r *noteRepoFake) SetEnabled(_ context.Context, imageID, noteID int64, enabled bool) error {
	cur, ok := r.notes[noteID]
	if !ok || cur.ImageID != imageID {
		return domain.NotFound("note not found")
	}
	cur.Enabled = enabled
	r.notes[noteID] = cur
	return nil
}

func (r *noteRepoFake) RecountImage(_ context.Context, imageID int64) error {
	n := 0
	for _, v := range r.notes {
		if v.ImageID == imageID {
			n++
		}
	}
	r.counts[imageID] = n
	return nil
}

func (r *noteRepoFake) NukeNotes(_ context.Context, imageID int64) error {
	for id, v := range r.notes {
		if v.ImageID == imageID {
			delete(r.notes, id)
		}
	}
	return nil
}

func (r *noteRepoFake) ForImage(_ context.Context, imageID int64) ([]note.Note, error) {
	var out []note.Note
	for id := int64(1); id <= r.nextID; id++ {
		if v, ok := r.notes[id]; ok && v.ImageID == imageID && v.Enabled {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *noteRepoFake) AddRequest(_ context.Context, imageID, userID int64) (int64, error) {
	id := int64(len(r.requests) + 1)
	r.requests = append(r.requests, note.Request{ID: id, ImageID: imageID, UserID: userID})
	return id, nil
}

func (r *noteRepoFake) NukeRequests(_ context.Context, imageID int64) error {
	kept := r.requests[:0]
	for _, q := range r.requests {
		if q.ImageID != imageID {
			kept = append(kept, q)
		}
	}
	r.requests = kept
	return nil
}

func (r *noteRepoFake) AddHistory(_ context.Context, h note.History) error {
	n := 0
	for _, v := range r.histories {
		if v.NoteID == h.NoteID {
			n++
		}
	}
	h.ReviewID = n + 1
	r.histories = append(r.histories, h)
	return nil
}

func (r *noteRepoFake) GetHistory(_ context.Context, noteID int64, reviewID int) (note.History, error) {
	for _, v := range r.histories {
		if v.NoteID == noteID && v.ReviewID == reviewID {
			return v, nil
		}
	}
	return note.History{}, domain.NotFound("history not found")
}

func (r *noteRepoFake) Histories(_ context.Context, f note.HistoryFilter, limit, offset int) ([]note.History, int, error) {
	var all []note.History
	for _, v := range r.histories {
		if (f.NoteID == 0 || v.NoteID == f.NoteID) && (f.ImageID == 0 || v.ImageID == f.ImageID) {
			all = append(all, v)
		}
	}
	total := len(all)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	return all[offset:end], total, nil
}

func (r *noteRepoFake) ImagesWithNotes(_ context.Context, limit, offset int) ([]int64, int, error) {
	seen := map[int64]bool{}
	var ids []int64
	for id := int64(1); id <= r.nextID; id++ {
		if v, ok := r.notes[id]; ok && v.Enabled && !seen[v.ImageID] {
			seen[v.ImageID] = true
			ids = append(ids, v.ImageID)
		}
	}
	return ids, len(ids), nil
}

func (r *noteRepoFake) RequestedImages(_ context.Context, limit, offset int) ([]int64, int, error) {
	var ids []int64
	for _, q := range r.requests {
		ids = append(ids, q.ImageID)
	}
	return ids, len(r.requests), nil
}

var (
	alice = domain.Viewer{ID: 10, IP: "10.0.0.1"}
	admin = domain.Viewer{ID: 1, Admin: true}
)

func newService(repo *noteRepoFake, cfg setting.Map) note.Service {
	return note.NewService(uowStub{}, repo, cfg, zap.NewNop())
}

func TestCreateRecordsHistoryAndCount(t *testing.T) {
	repo := newNoteRepoFake()
	svc := newService(repo, setting.Map{})
	ctx := context.Background()

	id, err := svc.Create(ctx, alice, note.Input{ImageID: 5, Geometry: note.Geometry{X1: 1, Y1: 2, Width: 30, Height: 40}, Text: "hi"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.counts[5] != 1 {
		t.Fatalf("image note count = %d", repo.counts[5])
	}
	if len(repo.histories) != 1 || repo.histories[0].NoteID != id || repo.histories[0].ReviewID != 1 || repo.histories[0].UserIP != alice.IP {
		t.Fatalf("histories = %+v", repo.histories)
	}
}

func TestUpdateNumbersRevisions(t *testing.T) {
	repo := newNoteRepoFake()
	svc := newService(repo, setting.Map{})
	ctx := context.Background()

	id, _ := svc.Create(ctx, alice, note.Input{ImageID: 5, Text: "v1"})
	if err := svc.Update(ctx, alice, note.Input{NoteID: id, ImageID: 5, Text: "v2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Empty text is ignored.
	if err := svc.Update(ctx, alice, note.Input{NoteID: id, ImageID: 5, Text: ""}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if repo.notes[id].Text != "v2" {
		t.Fatalf("text = %q", repo.notes[id].Text)
	}
	if len(repo.histories) != 2 || repo.histories[1].ReviewID != 2 {
		t.Fatalf("histories = %+v", repo.histories)
	}
}

func TestDeleteAndRevert(t *testing.T) {
	repo := newNoteRepoFake()
	svc := newService(repo, setting.Map{})
	ctx := context.Background()

	id, _ := svc.Create(ctx, alice, note.Input{ImageID: 5, Text: "v1"})
	_ = svc.Update(ctx, alice, note.Input{NoteID: id, ImageID: 5, Text: "v2"})

	if err := svc.Delete(ctx, alice, 5, id); err == nil {
		t.Fatalf("non-admin deleted a note")
	}
	if err := svc.Delete(ctx, admin, 5, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if notes, _ := svc.ForImage(ctx, 5); len(notes) != 0 {
		t.Fatalf("deleted note still listed")
	}

	if err := svc.Revert(ctx, alice, id, 1); err != nil {
		t.Fatalf("Revert: %v", err)
	}
	notes, _ := svc.ForImage(ctx, 5)
	if len(notes) != 1 || notes[0].Text != "v1" {
		t.Fatalf("notes after revert = %+v", notes)
	}
	if len(repo.histories) != 3 || repo.histories[2].ReviewID != 3 {
		t.Fatalf("revert not recorded: %+v", repo.histories)
	}
}

func TestHistoryNotFound(t *testing.T) {
	svc := newService(newNoteRepoFake(), setting.Map{})

	_, err := svc.History(context.Background(), 99, 1)
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	// The global listing is simply empty.
	page, err := svc.Updated(context.Background(), 1)
	if err != nil || len(page.Histories) != 0 {
		t.Fatalf("Updated = %+v, %v", page, err)
	}
}

func TestHistoryPaging(t *testing.T) {
	repo := newNoteRepoFake()
	svc := newService(repo, setting.Map{note.KeyHistoriesPerPage: "2"})
	ctx := context.Background()

	id, _ := svc.Create(ctx, alice, note.Input{ImageID: 5, Text: "v1"})
	for _, text := range []string{"v2", "v3", "v4", "v5"} {
		_ = svc.Update(ctx, alice, note.Input{NoteID: id, ImageID: 5, Text: text})
	}

	page, err := svc.History(ctx, id, 3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if page.TotalPages != 3 || len(page.Histories) != 1 || page.Histories[0].Text != "v5" {
		t.Fatalf("page = %+v", page)
	}
}

func TestRequests(t *testing.T) {
	repo := newNoteRepoFake()
	svc := newService(repo, setting.Map{})
	ctx := context.Background()

	if err := svc.Request(ctx, domain.Viewer{}, 5); err == nil {
		t.Fatalf("anonymous request accepted")
	}
	_ = svc.Request(ctx, alice, 5)
	_ = svc.Request(ctx, alice, 6)

	if err := svc.NukeRequests(ctx, admin, 5); err != nil {
		t.Fatalf("NukeRequests: %v", err)
	}
	page, _ := svc.Requests(ctx, 1)
	if len(page.ImageIDs) != 1 || page.ImageIDs[0] != 6 {
		t.Fatalf("requests = %+v", page)
	}
}

func TestListenerLinks(t *testing.T) {
	nav := &domain.PageNavBuildingEvent{}
	_ = note.Listener{}.ReceiveEvent(context.Background(), nav)
	if len(nav.Links) != 1 || nav.Links[0].Text != "Notes" || nav.Links[0].Category != "note" {
		t.Fatalf("nav = %+v", nav.Links)
	}

	sub := &domain.PageSubNavBuildingEvent{Parent: "note"}
	_ = note.Listener{}.ReceiveEvent(context.Background(), sub)
	if len(sub.Links) != 4 {
		t.Fatalf("sub nav = %+v", sub.Links)
	}
}
