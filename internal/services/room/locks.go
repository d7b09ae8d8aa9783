package room

import (
	"sync"

	"github.com/hweijian/ghostgame-go/internal/model"
)

// keyedLocks serializes mutations per room id. Entries are reference
// counted and dropped once the last holder releases, so torn-down rooms
// leave nothing behind.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[model.RoomID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[model.RoomID]*lockEntry)}
}

// acquire blocks until the room's lock is held and returns the release func
func (l *keyedLocks) acquire(id model.RoomID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &lockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
