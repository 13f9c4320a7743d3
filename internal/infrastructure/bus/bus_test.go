package bus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"gallery/internal/domain"
	"gallery/internal/infrastructure/bus"
)

type pingEvent struct{ seen []string }

func (*pingEvent) EventName() string { return "ping" }

type pongEvent struct{}

func (*pongEvent) EventName() string { return "pong" }

func recorder(name string) domain.Listener {
	return domain.On(func(_ context.Context, e *pingEvent) error {
		e.seen = append(e.seen, name)
		return nil
	})
}

func TestDispatchOrder(t *testing.T) {
	b := bus.New(zap.NewNop())

	if s := b.Register(recorder("A"), 50); s != 50 {
		t.Fatalf("A slot = %d, want 50", s)
	}
	if s := b.Register(recorder("B"), 50); s != 51 {
		t.Fatalf("B slot = %d, want 51", s)
	}
	if s := b.Register(recorder("C"), 10); s != 10 {
		t.Fatalf("C slot = %d, want 10", s)
	}

	ev := &pingEvent{}
	if err := b.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	want := []string{"C", "A", "B"}
	if len(ev.seen) != len(want) {
		t.Fatalf("seen %v, want %v", ev.seen, want)
	}
	for i := range want {
		if ev.seen[i] != want[i] {
			t.Fatalf("seen %v, want %v", ev.seen, want)
		}
	}
}

func TestRegisterCollisionMovesUpward(t *testing.T) {
	b := bus.New(zap.NewNop())

	for i, want := range []int{5, 6, 7} {
		if got := b.Register(recorder("x"), 5); got != want {
			t.Fatalf("registration %d: slot %d, want %d", i, got, want)
		}
	}

	// 6 is taken, so a request for 6 lands on 8.
	if got := b.Register(recorder("y"), 6); got != 8 {
		t.Fatalf("slot %d, want 8", got)
	}

	slots := b.Slots()
	want := []int{5, 6, 7, 8}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slots %v, want %v", slots, want)
		}
	}
}

func TestDispatchStopsAtFirstError(t *testing.T) {
	b := bus.New(zap.NewNop())
	boom := errors.New("boom")

	b.Register(recorder("first"), 1)
	b.Register(domain.ListenerFunc(func(context.Context, domain.Event) error { return boom }), 2)
	b.Register(recorder("never"), 3)

	ev := &pingEvent{}
	err := b.Dispatch(context.Background(), ev)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(ev.seen) != 1 || ev.seen[0] != "first" {
		t.Fatalf("listeners after the failing one ran: %v", ev.seen)
	}
}

func TestOnSkipsOtherVariants(t *testing.T) {
	b := bus.New(zap.NewNop())
	b.Register(recorder("A"), domain.DefaultPriority)

	if err := b.Dispatch(context.Background(), &pongEvent{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
}

func TestDispatchWithoutListeners(t *testing.T) {
	b := bus.New(zap.NewNop())
	if err := b.Dispatch(context.Background(), &pingEvent{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
}

type observerFake struct {
	names []string
	errs  []error
}

func (o *observerFake) ObserveDispatch(event string, _ time.Duration, err error) {
	o.names = append(o.names, event)
	o.errs = append(o.errs, err)
}

func TestObserverSeesEveryDispatch(t *testing.T) {
	obs := &observerFake{}
	b := bus.New(zap.NewNop(), bus.WithObserver(obs))
	b.Register(domain.ListenerFunc(func(_ context.Context, e domain.Event) error {
		if _, ok := e.(*pongEvent); ok {
			return errors.New("no pong")
		}
		return nil
	}), domain.DefaultPriority)

	_ = b.Dispatch(context.Background(), &pingEvent{})
	_ = b.Dispatch(context.Background(), &pongEvent{})

	if len(obs.names) != 2 || obs.names[0] != "ping" || obs.names[1] != "pong" {
		t.Fatalf("observed %v", obs.names)
	}
	if obs.errs[0] != nil || obs.errs[1] == nil {
		t.Fatalf("unexpected errors %v", obs.errs)
	}
}
