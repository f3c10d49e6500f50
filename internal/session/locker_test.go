package session

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocker_SerializesSameUser(t *testing.T) {
	locker := NewLocker()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("user-1")
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, locker.Held(), "idle locks should be released")
}

func TestLocker_DifferentUsersDoNotBlock(t *testing.T) {
	locker := NewLocker()

	unlockA := locker.Lock("user-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locker.Lock("user-b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for user-b blocked on user-a")
	}
}
