package session

import "sync"

// Locker serializes work per user ID so overlapping messages from one user
// are processed one at a time. Different users never block each other.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocker creates an empty Locker
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*userLock)}
}

// Lock blocks until the caller holds userID's lock and returns the matching unlock func
func (l *Locker) Lock(userID string) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &userLock{}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

// Held returns the number of user IDs with a holder or waiter
func (l *Locker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
