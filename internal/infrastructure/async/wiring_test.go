package async_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gallery/internal/domain"
	"gallery/internal/domain/media"
	"gallery/internal/domain/setting"
	"gallery/internal/domain/thumb"
	"gallery/internal/infrastructure/async"
	"gallery/internal/infrastructure/bus"
)

type catalogFake struct{ images []media.Image }

func (c catalogFake) ListMedia(_ context.Context, afterID int64, limit int) ([]media.Image, error) {
	var out []media.Image
	for _, img := range c.images {
		if img.ID > afterID && len(out) < limit {
			out = append(out, img)
		}
	}
	return out, nil
}

func thumbSettings() setting.Map {
	return setting.Map{
		thumb.KeyEngine:  "test",
		thumb.KeyWidth:   "192",
		thumb.KeyHeight:  "192",
		thumb.KeyScaling: "100",
		thumb.KeyFit:     "fit",
		thumb.KeyMime:    "image/jpeg",
		thumb.KeyQuality: "75",
	}
}

// regenerate runs a full regeneration the way the thumbs command does and
// fails the test if it does not finish.
func regenerate(t *testing.T, regenPool, logPool *async.WorkerPool, images int) *thumb.Regenerator {
	t.Helper()

	b := bus.New(zap.NewNop())
	b.Register(domain.On(func(_ context.Context, ev *media.ResizeEvent) error {
		ev.Handled = true
		return nil
	}), 10)
	b.Register(async.NewEventLog(logPool, zap.NewNop()), 100)

	cat := catalogFake{}
	for i := 1; i <= images; i++ {
		cat.images = append(cat.images, media.Image{ID: int64(i), Hash: "abcdef", Mime: "image/png", Width: 10, Height: 10})
	}
	dispatcher := thumb.NewDispatcher(b, thumbSettings(), media.Warehouse{Root: t.TempDir()})
	r := thumb.NewRegenerator(cat, dispatcher, regenPool, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		n, err := r.RegenerateAll(context.Background())
		if err == nil && n != images {
			t.Errorf("submitted %d, want %d", n, images)
		}
		regenPool.Close()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RegenerateAll: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("regeneration did not finish")
	}
	return r
}

func TestRegenerationWithSeparateEventLogPool(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	regenPool := async.NewWorkerPool(context.Background(), 4, 0, time.Second, zap.New(core))
	logPool := async.NewWorkerPool(context.Background(), 1, 64, time.Second, zap.NewNop())

	r := regenerate(t, regenPool, logPool, 20)
	logPool.Close()

	if r.Failed() != 0 {
		t.Fatalf("failed = %d", r.Failed())
	}
	if logs.FilterMessage("task panicked").Len() != 0 {
		t.Fatalf("tasks panicked: %v", logs.All())
	}
}

func TestRegenerationSharingOnePoolWithEventLog(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	pool := async.NewWorkerPool(context.Background(), 4, 0, time.Second, zap.New(core))

	r := regenerate(t, pool, pool, 20)

	if r.Failed() != 0 {
		t.Fatalf("failed = %d", r.Failed())
	}
	if logs.FilterMessage("task panicked").Len() != 0 {
		t.Fatalf("tasks panicked: %v", logs.All())
	}
}
