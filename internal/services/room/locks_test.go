package room

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocksSerializePerRoom(t *testing.T) {
	locks := newKeyedLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.acquire("GAME1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedLocksDropReleasedEntries(t *testing.T) {
	locks := newKeyedLocks()

	release := locks.acquire("GAME1")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "released locks must not accumulate")
}

func TestKeyedLocksIndependentRooms(t *testing.T) {
	locks := newKeyedLocks()

	r1 := locks.acquire("GAME1")
	defer r1()

	// a different room's lock is acquirable while GAME1 is held
	done := make(chan struct{})
	go func() {
		r2 := locks.acquire("GAME2")
		r2()
		close(done)
	}()
	<-done
}
