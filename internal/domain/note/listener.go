package note

import (
	"context"

	"gallery/internal/domain"
)

type Listener struct{}

var _ domain.Listener = Listener{}

func (Listener) Name() string { return "notes" }

func (Listener) ReceiveEvent(_ context.Context, e domain.Event) error {
	switch ev := e.(type) {
	case *domain.PageNavBuildingEvent:
		ev.AddNavLink("/note/requests", "Notes", "note")
	case *domain.PageSubNavBuildingEvent:
		if ev.Parent == "note" {
			ev.AddNavLink("/note/requests", "Requests")
			ev.AddNavLink("/note/list", "List")
			ev.AddNavLink("/note/updated", "Updates")
			ev.AddNavLink("/ext_doc/notes", "Help")
		}
	}
	return nil
}
