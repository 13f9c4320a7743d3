package domain

import "context"

// DefaultPriority is the slot requested by listeners that do not care
// where they run relative to others.
const DefaultPriority = 50

// Event is anything that can travel over the bus. Variants are pointer
// structs so listeners can accumulate results on them.
type Event interface {
	EventName() string
}

type Listener interface {
	ReceiveEvent(ctx context.Context, e Event) error
}

type ListenerFunc func(ctx context.Context, e Event) error

func (f ListenerFunc) ReceiveEvent(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// On adapts a handler for one event variant into a Listener that ignores
// every other variant.
func On[T Event](fn func(ctx context.Context, e T) error) Listener {
	return ListenerFunc(func(ctx context.Context, e Event) error {
		ev, ok := e.(T)
		if !ok {
			return nil
		}
		return fn(ctx, ev)
	})
}

type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) error
}

type EventBus interface {
	Dispatcher
	Register(l Listener, priority int) int
}
