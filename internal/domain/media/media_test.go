package media_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gallery/internal/domain/media"
)

func TestParseFitMode(t *testing.T) {
	cases := map[string]media.FitMode{
		"fit":               media.FitFit,
		"contain":           media.FitFit,
		"fill":              media.FitFill,
		"stretch":           media.FitStretch,
		"fit_blur":          media.FitFitBlur,
		"fit_blur_portrait": media.FitFitBlurPortrait,
	}
	for in, want := range cases {
		got, err := media.ParseFitMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseFitMode(%q) = %q, %v", in, got, err)
		}
	}

	if _, err := media.ParseFitMode("zoom"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestFillsBox(t *testing.T) {
	if media.FitFit.FillsBox() {
		t.Fatalf("fit must not fill the box")
	}
	for _, f := range []media.FitMode{media.FitFill, media.FitStretch, media.FitFitBlur, media.FitFitBlurPortrait} {
		if !f.FillsBox() {
			t.Fatalf("%s should fill the box", f)
		}
	}
}

func TestResizeEventResult(t *testing.T) {
	ev := media.NewResizeEvent("imaging", "in", "image/png", "out", 10, 10, media.FitFit, "image/jpeg", "#ffffff", 80, true, true)
	if !errors.Is(ev.Result(), media.ErrNoEngine) {
		t.Fatalf("unhandled request should report ErrNoEngine")
	}

	ev.Handled = true
	if ev.Result() != nil {
		t.Fatalf("handled request reported %v", ev.Result())
	}

	boom := errors.New("decode failed")
	ev.Err = boom
	if !errors.Is(ev.Result(), boom) {
		t.Fatalf("engine error lost: %v", ev.Result())
	}
}

func TestWarehouseLayout(t *testing.T) {
	root := t.TempDir()
	w := media.Warehouse{Root: root}
	hash := "abcdef0123"

	if got, want := w.ImagePath(hash), filepath.Join(root, "images", "ab", hash); got != want {
		t.Fatalf("ImagePath = %s, want %s", got, want)
	}
	if got, want := w.ThumbPath(hash), filepath.Join(root, "thumbs", "ab", hash); got != want {
		t.Fatalf("ThumbPath = %s, want %s", got, want)
	}

	n, err := w.StoreImage(hash, strings.NewReader("data"))
	if err != nil || n != 4 {
		t.Fatalf("StoreImage = %d, %v", n, err)
	}
	if _, err := os.Stat(w.ImagePath(hash)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	if err := w.Remove(hash); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(w.ImagePath(hash)); !os.IsNotExist(err) {
		t.Fatalf("file still present after Remove")
	}
}
