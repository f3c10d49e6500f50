package jobs

import (
	"log"
	"sync"
	"time"
)

// SessionEvicter drops expired sessions and reports how many were removed
type SessionEvicter interface {
	EvictExpired() int
}

// SessionSweeper periodically removes expired chat sessions
type SessionSweeper struct {
	sessions SessionEvicter
	interval time.Duration

	mu        sync.Mutex
	isRunning bool
	stop      chan struct{}
	done      chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(sessions SessionEvicter, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
	}
}

// Start begins sweeping in the background
func (s *SessionSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		log.Println("Session sweeper already running")
		return
	}

	s.isRunning = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	log.Printf("Starting session sweeper (every %v)...", s.interval)
	go s.run(s.stop, s.done)
}

// Stop halts the sweeper and waits for the current sweep to finish
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	log.Println("Stopping session sweeper...")
	close(stop)
	<-done
}

func (s *SessionSweeper) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-stop:
			return
		}
	}
}

// Sweep removes expired sessions once
func (s *SessionSweeper) Sweep() int {
	removed := s.sessions.EvictExpired()
	if removed > 0 {
		log.Printf("Expired sessions removed: %d", removed)
	}
	return removed
}
