package thumb

import (
	"context"
	"fmt"

	"gallery/internal/domain"
	"gallery/internal/domain/media"
	"gallery/internal/domain/setting"
)

// Dispatcher turns thumbnail requests into resize events on the bus.
type Dispatcher struct {
	events    domain.Dispatcher
	settings  setting.Store
	policy    *Policy
	warehouse media.Warehouse
}

func NewDispatcher(events domain.Dispatcher, settings setting.Store, warehouse media.Warehouse) *Dispatcher {
	return &Dispatcher{
		events:    events,
		settings:  settings,
		policy:    NewPolicy(settings),
		warehouse: warehouse,
	}
}

func (d *Dispatcher) Policy() *Policy { return d.policy }

// CreateImageThumb renders the thumbnail of img into its warehouse slot.
// An empty engine means the configured one.
func (d *Dispatcher) CreateImageThumb(ctx context.Context, img media.Image, engine string) error {
	return d.CreateScaledImage(
		ctx,
		d.warehouse.ImagePath(img.Hash),
		d.warehouse.ThumbPath(img.Hash),
		d.policy.MaxSizeScaled(),
		img.Mime,
		engine,
		"",
	)
}

// CreateScaledImage requests a resize of inputPath into outputPath. Empty
// engine and fit fall back to the configured values. The source is always
// kept and engine failures are tolerated: they come back as the returned
// error without stopping other listeners.
func (d *Dispatcher) CreateScaledImage(
	ctx context.Context,
	inputPath, outputPath string,
	size Size,
	inputMime string,
	engine string,
	fit media.FitMode,
) error {
	if engine == "" {
		engine = d.settings.GetString(KeyEngine)
	}
	if fit == "" {
		parsed, err := media.ParseFitMode(d.settings.GetString(KeyFit))
		if err != nil {
			return fmt.Errorf("%s: %w", KeyFit, err)
		}
		fit = parsed
	}

	ev := media.NewResizeEvent(
		engine,
		inputPath,
		inputMime,
		outputPath,
		size.Width,
		size.Height,
		fit,
		d.settings.GetString(KeyMime),
		d.settings.GetString(KeyAlphaColor),
		d.settings.GetInt(KeyQuality),
		true,
		true,
	)

	if err := d.events.Dispatch(ctx, ev); err != nil {
		return fmt.Errorf("resize %s: %w", inputPath, err)
	}
	if err := ev.Result(); err != nil {
		return fmt.Errorf("resize %s with %s: %w", inputPath, engine, err)
	}
	return nil
}
