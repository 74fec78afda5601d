package latch

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Latch rejects a second submission of the same form while the first is in flight.
// It is a mutual-exclusion latch per key, not a queue: losers are turned away.
type Latch struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	sem   *semaphore.Weighted
	users int
}

// New creates an empty Latch
func New() *Latch {
	return &Latch{slots: make(map[string]*slot)}
}

// TryAcquire takes the latch for key. When ok is true the caller must call release
// once its submission has finished.
func (l *Latch) TryAcquire(key string) (release func(), ok bool) {
	l.mu.Lock()
	s, exists := l.slots[key]
	if !exists {
		s = &slot{sem: semaphore.NewWeighted(1)}
		l.slots[key] = s
	}
	if !s.sem.TryAcquire(1) {
		l.mu.Unlock()
		return nil, false
	}
	s.users++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			s.sem.Release(1)
			s.users--
			if s.users == 0 {
				delete(l.slots, key)
			}
		})
	}, true
}
