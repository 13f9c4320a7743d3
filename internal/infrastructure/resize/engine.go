// Package resize is the media engine that performs resize requests with
// github.com/disintegration/imaging.
package resize

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gallery/internal/domain"
	"gallery/internal/domain/media"
)

// Name is the engine name requests must carry to be handled here.
const Name = "imaging"

// Priority places the engine ahead of ordinary extensions.
const Priority = 10

const blurSigma = 8

type Recorder interface {
	ObserveResize(engine, fit string, err error)
}

type Engine struct {
	log *zap.Logger
	rec Recorder
}

var _ domain.Listener = (*Engine)(nil)

func New(log *zap.Logger, rec Recorder) *Engine {
	return &Engine{log: log, rec: rec}
}

func (e *Engine) Name() string { return "resize." + Name }

func (e *Engine) ReceiveEvent(_ context.Context, ev domain.Event) error {
	req, ok := ev.(*media.ResizeEvent)
	if !ok || req.Engine != Name {
		return nil
	}
	req.Handled = true

	w, h, err := e.resize(req)
	if e.rec != nil {
		e.rec.ObserveResize(Name, string(req.Fit), err)
	}
	if err != nil {
		e.log.Warn("resize failed",
			zap.String("input", req.InputPath),
			zap.String("fit", string(req.Fit)),
			zap.Error(err),
		)
		if req.TolerateFailure {
			req.Err = err
			return nil
		}
		return err
	}

	req.OutputWidth, req.OutputHeight = w, h
	e.log.Debug("resized",
		zap.String("input", req.InputPath),
		zap.String("output", req.OutputPath),
		zap.Int("width", w),
		zap.Int("height", h),
	)

	if !req.KeepSource {
		if err := os.Remove(req.InputPath); err != nil && !os.IsNotExist(err) {
			e.log.Warn("remove source failed", zap.String("input", req.InputPath), zap.Error(err))
		}
	}
	return nil
}

func (e *Engine) resize(req *media.ResizeEvent) (int, int, error) {
	if req.TargetWidth <= 0 || req.TargetHeight <= 0 {
		return 0, 0, fmt.Errorf("target size %dx%d is not positive", req.TargetWidth, req.TargetHeight)
	}

	format, err := formatForMime(req.OutputMime)
	if err != nil {
		return 0, 0, err
	}

	src, err := imaging.Open(req.InputPath, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", req.InputPath, err)
	}

	out, err := transform(src, req.TargetWidth, req.TargetHeight, req.Fit)
	if err != nil {
		return 0, 0, err
	}

	if format == imaging.JPEG || format == imaging.BMP {
		bg, err := parseColor(req.AlphaColor)
		if err != nil {
			return 0, 0, err
		}
		out = flatten(out, bg)
	}

	if err := writeAtomic(req.OutputPath, out, format, req.Quality); err != nil {
		return 0, 0, err
	}

	b := out.Bounds()
	return b.Dx(), b.Dy(), nil
}

func transform(src image.Image, w, h int, fit media.FitMode) (*image.NRGBA, error) {
	switch fit {
	case media.FitFit:
		return imaging.Fit(src, w, h, imaging.Lanczos), nil
	case media.FitFill:
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos), nil
	case media.FitStretch:
		return imaging.Resize(src, w, h, imaging.Lanczos), nil
	case media.FitFitBlur:
		return fitBlur(src, w, h), nil
	case media.FitFitBlurPortrait:
		b := src.Bounds()
		if b.Dy() > b.Dx() {
			return fitBlur(src, w, h), nil
		}
		return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos), nil
	}
	return nil, fmt.Errorf("unsupported fit mode %q", fit)
}

// fitBlur centers the fitted image over a blurred copy that fills the box.
func fitBlur(src image.Image, w, h int) *image.NRGBA {
	bg := imaging.Blur(imaging.Fill(src, w, h, imaging.Center, imaging.Linear), blurSigma)
	fg := imaging.Fit(src, w, h, imaging.Lanczos)
	return imaging.OverlayCenter(bg, fg, 1.0)
}

func flatten(img *image.NRGBA, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(base, img, image.Pt(0, 0), 1.0)
}

func formatForMime(mime string) (imaging.Format, error) {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return imaging.JPEG, nil
	case "image/png":
		return imaging.PNG, nil
	case "image/gif":
		return imaging.GIF, nil
	case "image/bmp":
		return imaging.BMP, nil
	case "image/tiff":
		return imaging.TIFF, nil
	}
	return 0, fmt.Errorf("unsupported output mime %q", mime)
}

// parseColor reads #rgb or #rrggbb. An empty string means white.
func parseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("bad alpha color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad alpha color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// writeAtomic encodes into a temp file next to dst and renames it into place.
func writeAtomic(dst string, img image.Image, format imaging.Format, quality int) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	err = imaging.Encode(f, img, format, imaging.JPEGQuality(quality))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, dst)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
