package resize_test

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"gallery/internal/domain"
	"gallery/internal/domain/media"
	"gallery/internal/infrastructure/bus"
	"gallery/internal/infrastructure/resize"
)

func writeSource(t *testing.T, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 128})
	p := filepath.Join(t.TempDir(), "src.png")
	if err := imaging.Save(img, p); err != nil {
		t.Fatalf("save source: %v", err)
	}
	return p
}

func request(in, out string, w, h int, fit media.FitMode) *media.ResizeEvent {
	return media.NewResizeEvent(resize.Name, in, "image/png", out, w, h, fit, "image/jpeg", "#ffffff", 80, true, true)
}

type recorderFake struct{ calls, failures int }

func (r *recorderFake) ObserveResize(_, _ string, err error) {
	r.calls++
	if err != nil {
		r.failures++
	}
}

func TestFitModes(t *testing.T) {
	cases := []struct {
		fit          media.FitMode
		srcW, srcH   int
		wantW, wantH int
	}{
		{media.FitFit, 400, 200, 100, 50},
		{media.FitFill, 400, 200, 100, 100},
		{media.FitStretch, 400, 200, 100, 100},
		{media.FitFitBlur, 400, 200, 100, 100},
		{media.FitFitBlurPortrait, 200, 400, 100, 100},
		{media.FitFitBlurPortrait, 400, 200, 100, 100},
	}

	for _, tc := range cases {
		t.Run(string(tc.fit), func(t *testing.T) {
			in := writeSource(t, tc.srcW, tc.srcH)
			out := filepath.Join(t.TempDir(), "thumbs", "ab", "abcdef")
			rec := &recorderFake{}
			e := resize.New(zap.NewNop(), rec)

			req := request(in, out, 100, 100, tc.fit)
			if err := e.ReceiveEvent(context.Background(), req); err != nil {
				t.Fatalf("ReceiveEvent: %v", err)
			}
			if err := req.Result(); err != nil {
				t.Fatalf("result: %v", err)
			}

			got, err := imaging.Open(out)
			if err != nil {
				t.Fatalf("open output: %v", err)
			}
			if b := got.Bounds(); b.Dx() != tc.wantW || b.Dy() != tc.wantH {
				t.Fatalf("output %dx%d, want %dx%d", b.Dx(), b.Dy(), tc.wantW, tc.wantH)
			}
			if req.OutputWidth != tc.wantW || req.OutputHeight != tc.wantH {
				t.Fatalf("reported %dx%d", req.OutputWidth, req.OutputHeight)
			}
			if rec.calls != 1 || rec.failures != 0 {
				t.Fatalf("recorder saw %d calls, %d failures", rec.calls, rec.failures)
			}
			if _, err := os.Stat(in); err != nil {
				t.Fatalf("source must be kept: %v", err)
			}
		})
	}
}

func TestIgnoresOtherEngines(t *testing.T) {
	e := resize.New(zap.NewNop(), nil)
	req := request("/nope", "/nope.out", 10, 10, media.FitFit)
	req.Engine = "convert"

	if err := e.ReceiveEvent(context.Background(), req); err != nil {
		t.Fatalf("ReceiveEvent: %v", err)
	}
	if req.Handled {
		t.Fatalf("request for another engine was claimed")
	}
}

func TestToleratedFailureDoesNotStopDispatch(t *testing.T) {
	b := bus.New(zap.NewNop())
	b.Register(resize.New(zap.NewNop(), nil), resize.Priority)

	later := false
	b.Register(domain.ListenerFunc(func(context.Context, domain.Event) error {
		later = true
		return nil
	}), domain.DefaultPriority)

	req := request(filepath.Join(t.TempDir(), "missing.png"), filepath.Join(t.TempDir(), "out"), 10, 10, media.FitFit)
	if err := b.Dispatch(context.Background(), req); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !later {
		t.Fatalf("listener after the engine did not run")
	}
	if !req.Handled || req.Err == nil {
		t.Fatalf("failure not recorded on request: %+v", req)
	}
}

func TestUntoleratedFailureAbortsDispatch(t *testing.T) {
	e := resize.New(zap.NewNop(), nil)
	req := request(filepath.Join(t.TempDir(), "missing.png"), filepath.Join(t.TempDir(), "out"), 10, 10, media.FitFit)
	req.TolerateFailure = false

	if err := e.ReceiveEvent(context.Background(), req); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUnsupportedOutputMime(t *testing.T) {
	e := resize.New(zap.NewNop(), nil)
	req := request(writeSource(t, 10, 10), filepath.Join(t.TempDir(), "out"), 10, 10, media.FitFit)
	req.OutputMime = "image/webp"

	_ = e.ReceiveEvent(context.Background(), req)
	if req.Err == nil {
		t.Fatalf("expected error for webp output")
	}
}

func TestJPEGOutputIsFlattenedOntoAlphaColor(t *testing.T) {
	e := resize.New(zap.NewNop(), nil)
	src := imaging.New(20, 20, color.NRGBA{})
	in := filepath.Join(t.TempDir(), "clear.png")
	if err := imaging.Save(src, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out")

	req := request(in, out, 20, 20, media.FitStretch)
	req.AlphaColor = "#0000ff"
	if err := e.ReceiveEvent(context.Background(), req); err != nil || req.Err != nil {
		t.Fatalf("resize: %v / %v", err, req.Err)
	}

	got, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	r, g, b, _ := got.At(10, 10).RGBA()
	if r>>8 > 10 || g>>8 > 10 || b>>8 < 240 {
		t.Fatalf("pixel = %d,%d,%d; want blue", r>>8, g>>8, b>>8)
	}
}

func TestDropSourceWhenNotKept(t *testing.T) {
	e := resize.New(zap.NewNop(), nil)
	in := writeSource(t, 10, 10)
	req := request(in, filepath.Join(t.TempDir(), "out"), 5, 5, media.FitFit)
	req.KeepSource = false

	if err := e.ReceiveEvent(context.Background(), req); err != nil || req.Err != nil {
		t.Fatalf("resize: %v / %v", err, req.Err)
	}
	if _, err := os.Stat(in); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("source still present: %v", err)
	}
}
