// Package sitedesc attaches the configured site description and keywords to
// every page.
package sitedesc

import (
	"context"

	"gallery/internal/domain"
	"gallery/internal/domain/setting"
)

const (
	KeyDescription = "site_description"
	KeyKeywords    = "site_keywords"
)

type Listener struct {
	settings setting.Store
}

var _ domain.Listener = (*Listener)(nil)

func NewListener(settings setting.Store) *Listener {
	return &Listener{settings: settings}
}

func (l *Listener) Name() string { return "site_description" }

func (l *Listener) ReceiveEvent(_ context.Context, e domain.Event) error {
	ev, ok := e.(*domain.PageRequestEvent)
	if !ok {
		return nil
	}
	if d := l.settings.GetString(KeyDescription); d != "" {
		ev.SetMeta("description", d)
	}
	if k := l.settings.GetString(KeyKeywords); k != "" {
		ev.SetMeta("keywords", k)
	}
	return nil
}
