package media

import "fmt"

// FitMode says how a source image is mapped onto a target box.
type FitMode string

const (
	// FitFit scales to fit inside the box, keeping aspect ratio.
	FitFit FitMode = "fit"
	// FitFitBlur fits the image over a blurred, box-filling copy of itself.
	FitFitBlur FitMode = "fit_blur"
	// FitFitBlurPortrait behaves like FitFitBlur for tall images and FitFill otherwise.
	FitFitBlurPortrait FitMode = "fit_blur_portrait"
	// FitFill scales and crops so the box is fully covered.
	FitFill FitMode = "fill"
	// FitStretch scales to the box exactly, ignoring aspect ratio.
	FitStretch FitMode = "stretch"
)

// ParseFitMode accepts the stored setting value; "contain" is an old name
// for "fit".
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case FitFit, FitFitBlur, FitFitBlurPortrait, FitFill, FitStretch:
		return FitMode(s), nil
	case "contain":
		return FitFit, nil
	}
	return "", fmt.Errorf("unknown fit mode %q", s)
}

// FillsBox reports whether output always has exactly the box dimensions.
func (f FitMode) FillsBox() bool {
	switch f {
	case FitFill, FitStretch, FitFitBlur, FitFitBlurPortrait:
		return true
	}
	return false
}
