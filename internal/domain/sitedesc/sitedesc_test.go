package sitedesc_test

import (
	"context"
	"testing"

	"gallery/internal/domain"
	"gallery/internal/domain/setting"
	"gallery/internal/domain/sitedesc"
)

func TestDescriptionAndKeywordsAreAttached(t *testing.T) {
	l := sitedesc.NewListener(setting.Map{
		sitedesc.KeyDescription: "A gallery testbed",
		sitedesc.KeyKeywords:    "foo,bar,baz",
	})

	ev := &domain.PageRequestEvent{Method: "GET", Path: "/post/list"}
	if err := l.ReceiveEvent(context.Background(), ev); err != nil {
		t.Fatalf("ReceiveEvent: %v", err)
	}
	if ev.Meta["description"] != "A gallery testbed" {
		t.Fatalf("description = %q", ev.Meta["description"])
	}
	if ev.Meta["keywords"] != "foo,bar,baz" {
		t.Fatalf("keywords = %q", ev.Meta["keywords"])
	}
}

func TestEmptySettingsAddNothing(t *testing.T) {
	l := sitedesc.NewListener(setting.Map{sitedesc.KeyKeywords: ""})

	ev := &domain.PageRequestEvent{Method: "GET", Path: "/post/list"}
	if err := l.ReceiveEvent(context.Background(), ev); err != nil {
		t.Fatalf("ReceiveEvent: %v", err)
	}
	if len(ev.Meta) != 0 {
		t.Fatalf("unexpected meta %v", ev.Meta)
	}
}

func TestOtherEventsAreIgnored(t *testing.T) {
	l := sitedesc.NewListener(setting.Map{sitedesc.KeyDescription: "x"})
	if err := l.ReceiveEvent(context.Background(), &domain.UserDeletionEvent{UserID: 1}); err != nil {
		t.Fatalf("ReceiveEvent: %v", err)
	}
}
