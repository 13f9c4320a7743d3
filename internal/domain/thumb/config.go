package thumb

import (
	"errors"
	"fmt"

	"gallery/internal/domain/media"
	"gallery/internal/domain/setting"
)

const (
	KeyEngine     = "thumb_engine"
	KeyWidth      = "thumb_width"
	KeyHeight     = "thumb_height"
	KeyScaling    = "thumb_scaling"
	KeyUpscale    = "thumb_upscale"
	KeyFit        = "thumb_fit"
	KeyMime       = "thumb_mime"
	KeyAlphaColor = "thumb_alpha_color"
	KeyQuality    = "thumb_quality"
)

// Validate reports every invalid thumbnail setting at once.
func Validate(s setting.Store) error {
	var errs []error

	if s.GetString(KeyEngine) == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeyEngine))
	}
	if _, err := media.ParseFitMode(s.GetString(KeyFit)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyFit, err))
	}
	for _, key := range []string{KeyWidth, KeyHeight, KeyScaling} {
		if s.GetInt(key) <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", key))
		}
	}
	if q := s.GetInt(KeyQuality); q < 0 || q > 100 {
		errs = append(errs, fmt.Errorf("%s must be within 0..100, got %d", KeyQuality, q))
	}
	if s.GetString(KeyMime) == "" {
		errs = append(errs, fmt.Errorf("%s is empty", KeyMime))
	}

	return errors.Join(errs...)
}
