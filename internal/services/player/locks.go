package player

import (
	"sync"

	"github.com/mcoot/golfhandicap/internal/model"
)

// keyedLocks hands out one mutex per player. Entries are reference counted
// and dropped once nobody holds or waits on them.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[model.PlayerID]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{
		locks: make(map[model.PlayerID]*refLock),
	}
}

func (k *keyedLocks) acquire(id model.PlayerID) *refLock {
	k.mu.Lock()
	defer k.mu.Unlock()
	l, ok := k.locks[id]
	if !ok {
		l = &refLock{}
		k.locks[id] = l
	}
	l.refs++
	return l
}

func (k *keyedLocks) release(id model.PlayerID, l *refLock) {
	k.mu.Lock()
	defer k.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, id)
	}
}

// Lock blocks until the player's lock is held and returns its release func
func (k *keyedLocks) Lock(id model.PlayerID) func() {
	l := k.acquire(id)
	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.release(id, l)
	}
}

// TryLock takes the player's lock only if it is free right now
func (k *keyedLocks) TryLock(id model.PlayerID) (func(), bool) {
	l := k.acquire(id)
	if !l.mu.TryLock() {
		k.release(id, l)
		return nil, false
	}
	return func() {
		l.mu.Unlock()
		k.release(id, l)
	}, true
}

// size reports the number of live entries
func (k *keyedLocks) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
