package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storeTestUser     = "+919800000001"
	storeTestShortTTL = 50 * time.Millisecond
)

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})

	_, ok := store.Get(storeTestUser)
	assert.False(t, ok)

	_, ok = store.GetState(storeTestUser)
	assert.False(t, ok)
}

func TestStore_UpdateMergesFields(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})

	store.SetState(storeTestUser, "AWAITING_EMAIL")
	store.Update(storeTestUser, func(sess *Session) {
		sess.Authenticated = true
		sess.AccountID = "acc-1"
	})

	sess, ok := store.Get(storeTestUser)
	require.True(t, ok)
	assert.Equal(t, storeTestUser, sess.UserID)
	assert.Equal(t, "AWAITING_EMAIL", sess.State)
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "acc-1", sess.AccountID)
	assert.False(t, sess.LastActivity.IsZero())
}

func TestStore_UserIDIsImmutable(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})

	store.Update(storeTestUser, func(sess *Session) {
		sess.UserID = "someone-else"
	})

	sess, ok := store.Get(storeTestUser)
	require.True(t, ok)
	assert.Equal(t, storeTestUser, sess.UserID)
	_, ok = store.Get("someone-else")
	assert.False(t, ok)
}

func TestStore_Scratch(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})

	store.SetScratch(storeTestUser, "bottleType", "200ml")
	store.SetScratch(storeTestUser, "quantity", "50")

	v, ok := store.GetScratch(storeTestUser, "bottleType")
	require.True(t, ok)
	assert.Equal(t, "200ml", v)

	store.ClearScratch(storeTestUser)
	_, ok = store.GetScratch(storeTestUser, "quantity")
	assert.False(t, ok)

	// the session itself survives
	_, ok = store.Get(storeTestUser)
	assert.True(t, ok)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})
	store.SetScratch(storeTestUser, "email", "a@example.com")

	sess, _ := store.Get(storeTestUser)
	sess.Scratch["email"] = "tampered@example.com"
	sess.State = "TAMPERED"

	v, _ := store.GetScratch(storeTestUser, "email")
	assert.Equal(t, "a@example.com", v)
	_, ok := store.GetState(storeTestUser)
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})
	store.SetState(storeTestUser, "MAIN_MENU")

	store.Clear(storeTestUser)

	_, ok := store.Get(storeTestUser)
	assert.False(t, ok)
	store.ClearScratch(storeTestUser) // no-op on a missing session
	_, ok = store.Get(storeTestUser)
	assert.False(t, ok)
}

func TestStore_ExpiredSessionLooksNew(t *testing.T) {
	store := NewStore(Config{Timeout: storeTestShortTTL})
	store.Update(storeTestUser, func(sess *Session) {
		sess.State = "AUTHENTICATED"
		sess.Authenticated = true
	})

	time.Sleep(3 * storeTestShortTTL)

	_, ok := store.GetState(storeTestUser)
	assert.False(t, ok)
	sess, ok := store.Get(storeTestUser)
	assert.False(t, ok)
	assert.False(t, sess.Authenticated)
	assert.Equal(t, 0, store.Len(), "expired session should be evicted on read")

	// a write after expiry starts from scratch
	store.SetState(storeTestUser, "AWAITING_EMAIL")
	sess, ok = store.Get(storeTestUser)
	require.True(t, ok)
	assert.False(t, sess.Authenticated)
}

func TestStore_ReadSlidesExpiration(t *testing.T) {
	store := NewStore(Config{Timeout: 200 * time.Millisecond})
	store.SetState(storeTestUser, "MAIN_MENU")

	for i := 0; i < 4; i++ {
		time.Sleep(100 * time.Millisecond)
		_, ok := store.Get(storeTestUser)
		require.True(t, ok, "read %d should keep the session alive", i)
	}
}

func TestStore_EvictExpired(t *testing.T) {
	store := NewStore(Config{Timeout: storeTestShortTTL})
	store.SetState("stale-1", "MAIN_MENU")
	store.SetState("stale-2", "MAIN_MENU")

	time.Sleep(3 * storeTestShortTTL)
	store.SetState("fresh", "MAIN_MENU")

	assert.Equal(t, 2, store.EvictExpired())
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("fresh")
	assert.True(t, ok)
}

func TestStore_DefaultTimeout(t *testing.T) {
	store := NewStore(Config{})
	assert.Equal(t, DefaultTimeout, store.Timeout())
}

func TestStore_ConcurrentUsers(t *testing.T) {
	store := NewStore(Config{Timeout: time.Minute})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n)
			for j := 0; j < 50; j++ {
				store.SetScratch(user, "counter", fmt.Sprint(j))
				store.SetState(user, "AWAITING_QUANTITY")
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		v, ok := store.GetScratch(fmt.Sprintf("user-%d", i), "counter")
		require.True(t, ok)
		assert.Equal(t, "49", v)
	}
}
