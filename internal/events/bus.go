package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Bus is an in-process fan-out of SnapshotChanged events.
//
// Publish never blocks on a subscriber: when a subscriber's buffer is full
// the event is dropped for that subscriber and a warning is logged.
// Subscribers that only care about staleness lose nothing, since the next
// event carries the same information.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan SnapshotChanged
	nextID int
	buffer int
	sinks  []Publisher
	closed bool
}

// NewBus creates a bus whose subscriber channels hold buffer events.
// A non-positive buffer means DefaultBuffer.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{
		subs:   make(map[int]chan SnapshotChanged),
		buffer: buffer,
	}
}

// AddSink forwards every published event to p as well.
func (b *Bus) AddSink(p Publisher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, p)
}

// Subscribe returns a channel of events and a function that unsubscribes
// and closes the channel. Calling the function more than once is safe.
func (b *Bus) Subscribe() (<-chan SnapshotChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan SnapshotChanged, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Consume subscribes and calls handle for every event until ctx is done or
// the bus is closed.
func (b *Bus) Consume(ctx context.Context, handle func(SnapshotChanged)) error {
	events, unsubscribe := b.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			handle(event)
		}
	}
}

// Publish delivers event to every subscriber and sink. A zero At is set to
// now. Sink failures are joined into the returned error; delivery to the
// remaining sinks continues.
func (b *Bus) Publish(ctx context.Context, event SnapshotChanged) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("Dropping event for slow subscriber",
				"subscriber", id,
				"group_id", event.GroupID,
				"kind", event.Kind,
			)
		}
	}
	sinks := append([]Publisher(nil), b.sinks...)
	b.mu.RUnlock()

	var errs []error
	for _, sink := range sinks {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
