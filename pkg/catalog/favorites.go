package catalog

import (
	"context"
	"log/slog"
	"sync"
)

// FavoriteStore is the persistent flag storage. A missing key reads as
// (false, false, nil).
type FavoriteStore interface {
	GetFavorite(ctx context.Context, name string) (favorited bool, found bool, err error)
	SetFavorite(ctx context.Context, name string, favorited bool) error
}

// FavoriteToggler owns the in-memory favorite state shown by the UI and the
// write path to the store. Toggles of the same name are serialized; toggles
// of different names run independently.
//
// A failed write rolls the in-memory state back and returns a
// *PersistenceError. Events are published only after a successful write.
type FavoriteToggler struct {
	store FavoriteStore
	bus   *Bus
	log   *slog.Logger

	mu    sync.Mutex
	state map[string]bool
	locks map[string]*sync.Mutex
}

func NewFavoriteToggler(store FavoriteStore, bus *Bus, log *slog.Logger) *FavoriteToggler {
	if log == nil {
		log = slog.Default()
	}
	return &FavoriteToggler{
		store: store,
		bus:   bus,
		log:   log,
		state: make(map[string]bool),
		locks: make(map[string]*sync.Mutex),
	}
}

func (t *FavoriteToggler) keyLock(name string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[name] = lock
	}
	return lock
}

// read falls back to false when the store cannot be read.
func (t *FavoriteToggler) read(ctx context.Context, name string) bool {
	favorited, _, err := t.store.GetFavorite(ctx, name)
	if err != nil {
		t.log.Warn("favorite read failed, assuming not favorited",
			"error", &PersistenceError{Op: "read", Key: name, Err: err})
		return false
	}
	return favorited
}

// Load reads the stored flag for name into the display state.
func (t *FavoriteToggler) Load(ctx context.Context, name string) bool {
	if name == "" {
		return false
	}
	lock := t.keyLock(name)
	lock.Lock()
	defer lock.Unlock()

	favorited := t.read(ctx, name)

	t.mu.Lock()
	t.state[name] = favorited
	t.mu.Unlock()
	return favorited
}

// IsFavorited returns the display state without touching the store.
func (t *FavoriteToggler) IsFavorited(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state[name]
}

// Toggle flips the flag for name and returns the state now displayed.
func (t *FavoriteToggler) Toggle(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyName
	}
	lock := t.keyLock(name)
	lock.Lock()
	defer lock.Unlock()

	t.mu.Lock()
	current, loaded := t.state[name]
	t.mu.Unlock()
	if !loaded {
		current = t.read(ctx, name)
	}

	next := !current
	t.mu.Lock()
	t.state[name] = next
	t.mu.Unlock()

	if err := t.store.SetFavorite(ctx, name, next); err != nil {
		t.mu.Lock()
		t.state[name] = current
		t.mu.Unlock()

		perr := &PersistenceError{Op: "write", Key: name, Err: err}
		t.log.Warn("favorite write failed, rolled back", "error", perr)
		return current, perr
	}

	t.log.Debug("favorite toggled", "name", name, "favorited", next)
	if t.bus != nil {
		t.bus.Publish(NewFavoriteEvent(name, next))
	}
	return next, nil
}
