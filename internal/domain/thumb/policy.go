package thumb

import (
	"fmt"
	"math"

	"gallery/internal/domain/media"
	"gallery/internal/domain/setting"
)

const (
	// unknownDimension stands in for a source dimension reported as 0.
	unknownDimension = 192
	maxAspectRatio   = 5
)

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Policy decides thumbnail dimensions from the current settings. It reads
// the store on every call, so setting changes apply immediately.
//
// Broken invariants (non-positive scale or result, unknown fit mode) are
// configuration errors and panic.
type Policy struct {
	settings setting.Store
}

func NewPolicy(settings setting.Store) *Policy {
	return &Policy{settings: settings}
}

// ThumbnailSize returns the display size of a thumbnail for an image of
// origW x origH.
func (p *Policy) ThumbnailSize(origW, origH int, useDPIScaling bool) Size {
	fit, err := media.ParseFitMode(p.settings.GetString(KeyFit))
	if err != nil {
		panic(fmt.Sprintf("thumb: %v", err))
	}
	if fit.FillsBox() {
		return Size{
			Width:  p.settings.GetInt(KeyWidth),
			Height: p.settings.GetInt(KeyHeight),
		}
	}

	if origW == 0 {
		origW = unknownDimension
	}
	if origH == 0 {
		origH = unknownDimension
	}
	origW, origH = clampAspectRatio(origW, origH)

	box := Size{
		Width:  p.settings.GetInt(KeyWidth),
		Height: p.settings.GetInt(KeyHeight),
	}
	if useDPIScaling {
		box = p.MaxSizeScaled()
	}

	scaled, scale := ScaledByAspectRatio(origW, origH, box.Width, box.Height)
	if scale > 1 && !p.settings.GetBool(KeyUpscale) {
		return Size{Width: origW, Height: origH}
	}
	return scaled
}

// MaxSizeScaled is the configured thumbnail box multiplied by the scaling
// percentage.
func (p *Policy) MaxSizeScaled() Size {
	factor := float64(p.settings.GetInt(KeyScaling)) / 100
	out := Size{
		Width:  int(float64(p.settings.GetInt(KeyWidth)) * factor),
		Height: int(float64(p.settings.GetInt(KeyHeight)) * factor),
	}
	if out.Width <= 0 || out.Height <= 0 {
		panic(fmt.Sprintf("thumb: scaled max size %dx%d is not positive", out.Width, out.Height))
	}
	return out
}

// ScaledByAspectRatio fits w x h into maxW x maxH keeping the aspect ratio.
// The returned scale is larger than 1 when the image had to grow.
func ScaledByAspectRatio(w, h, maxW, maxH int) (Size, float64) {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("thumb: source size %dx%d is not positive", w, h))
	}

	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if !(scale > 0) {
		panic(fmt.Sprintf("thumb: scale %v for %dx%d into %dx%d", scale, w, h, maxW, maxH))
	}

	out := Size{
		Width:  int(float64(w) * scale),
		Height: int(float64(h) * scale),
	}
	if out.Width <= 0 || out.Height <= 0 {
		panic(fmt.Sprintf("thumb: scaled size %dx%d is not positive", out.Width, out.Height))
	}
	return out, scale
}

// clampAspectRatio trims the long side so neither side exceeds five times
// the other.
func clampAspectRatio(w, h int) (int, int) {
	if w > h*maxAspectRatio {
		w = h * maxAspectRatio
	}
	if h > w*maxAspectRatio {
		h = w * maxAspectRatio
	}
	return w, h
}
