package catalog

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FavoriteEvent is published after a favorite flag was written successfully.
type FavoriteEvent struct {
	ID        uuid.UUID
	Name      string
	Favorited bool
	At        time.Time
}

func NewFavoriteEvent(name string, favorited bool) FavoriteEvent {
	return FavoriteEvent{
		ID:        uuid.New(),
		Name:      name,
		Favorited: favorited,
		At:        time.Now(),
	}
}

// Bus fans favorite events out to subscribers, each on its own goroutine.
// Publish never blocks: an event is dropped for a subscriber whose buffer
// is full.
type Bus struct {
	buffer int
	log    *slog.Logger

	mu     sync.RWMutex
	subs   []chan FavoriteEvent
	closed bool
	wg     sync.WaitGroup
}

func NewBus(buffer int, log *slog.Logger) *Bus {
	if buffer <= 0 {
		buffer = 16
	}
	if log == nil {
		log = slog.Default()
	}
	return &Bus{buffer: buffer, log: log}
}

func (b *Bus) Subscribe(fn func(FavoriteEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	ch := make(chan FavoriteEvent, b.buffer)
	b.subs = append(b.subs, ch)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for evt := range ch {
			fn(evt)
		}
	}()
}

func (b *Bus) Publish(evt FavoriteEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			b.log.Warn("favorite event dropped", "event", evt.ID, "name", evt.Name)
		}
	}
}

// Close stops accepting events and waits for subscribers to drain.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.mu.Unlock()

	b.wg.Wait()
}
