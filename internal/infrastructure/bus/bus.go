package bus

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"gallery/internal/domain"
)

// Observer is told about every finished dispatch.
type Observer interface {
	ObserveDispatch(event string, took time.Duration, err error)
}

type Option func(*Bus)

func WithObserver(o Observer) Option {
	return func(b *Bus) { b.obs = o }
}

// Bus delivers events to listeners synchronously, in ascending slot order.
// Each listener owns exactly one slot; a listener asking for a taken slot
// gets the next free one above it. Slots are never released.
type Bus struct {
	mu        sync.RWMutex
	listeners map[int]domain.Listener
	slots     []int

	log *zap.Logger
	obs Observer
}

var _ domain.EventBus = (*Bus)(nil)

func New(log *zap.Logger, opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[int]domain.Listener),
		log:       log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register places l at the first free slot >= priority and returns it.
func (b *Bus) Register(l domain.Listener, priority int) int {
	if l == nil {
		panic("bus: nil listener")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	slot := priority
	for {
		if _, taken := b.listeners[slot]; !taken {
			break
		}
		slot++
	}

	b.listeners[slot] = l
	i := sort.SearchInts(b.slots, slot)
	b.slots = slices.Insert(b.slots, i, slot)

	b.log.Debug("listener registered",
		zap.String("listener", listenerName(l)),
		zap.Int("requested", priority),
		zap.Int("slot", slot),
	)
	return slot
}

// Dispatch runs every listener in slot order. The first listener error
// stops the dispatch and is returned; later listeners do not run.
func (b *Bus) Dispatch(ctx context.Context, e domain.Event) error {
	start := time.Now()
	err := b.dispatch(ctx, e)
	if b.obs != nil {
		b.obs.ObserveDispatch(e.EventName(), time.Since(start), err)
	}
	return err
}

func (b *Bus) dispatch(ctx context.Context, e domain.Event) error {
	type entry struct {
		slot int
		l    domain.Listener
	}

	b.mu.RLock()
	ordered := make([]entry, 0, len(b.slots))
	for _, s := range b.slots {
		ordered = append(ordered, entry{slot: s, l: b.listeners[s]})
	}
	b.mu.RUnlock()

	for _, en := range ordered {
		if err := en.l.ReceiveEvent(ctx, e); err != nil {
			return fmt.Errorf("%s: listener %s at slot %d: %w", e.EventName(), listenerName(en.l), en.slot, err)
		}
	}
	return nil
}

// Slots returns the occupied slots in dispatch order.
func (b *Bus) Slots() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.slots)
}

type named interface {
	Name() string
}

func listenerName(l domain.Listener) string {
	if n, ok := l.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", l)
}
