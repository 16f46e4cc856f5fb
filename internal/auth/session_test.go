package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionManager_CreateValidate(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())

	token, err := manager.Create()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, manager.Validate(token))
}

func TestSessionManager_UnknownToken(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())

	assert.False(t, manager.Validate(""))
	assert.False(t, manager.Validate("no-such-token"))
}

func TestSessionManager_Revoke(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())

	token, err := manager.Create()
	require.NoError(t, err)
	require.True(t, manager.Validate(token))

	manager.Revoke(token)
	assert.False(t, manager.Validate(token))

	// Повторный отзыв и отзыв неизвестного токена - no-op
	manager.Revoke(token)
	manager.Revoke("no-such-token")
	assert.False(t, manager.Validate(token))
}

func TestSessionManager_Expiry(t *testing.T) {
	manager := NewSessionManager(50*time.Millisecond, false, zap.NewNop())

	token, err := manager.Create()
	require.NoError(t, err)
	require.True(t, manager.Validate(token))

	time.Sleep(120 * time.Millisecond)

	assert.False(t, manager.Validate(token))
}

func TestSessionManager_SlidingRenewal(t *testing.T) {
	manager := NewSessionManager(150*time.Millisecond, true, zap.NewNop())

	token, err := manager.Create()
	require.NoError(t, err)

	// Каждая проверка продлевает срок: сессия живет дольше исходного TTL
	for i := 0; i < 4; i++ {
		time.Sleep(60 * time.Millisecond)
		require.True(t, manager.Validate(token), "validation %d", i)
	}

	// Без проверок сессия истекает
	time.Sleep(300 * time.Millisecond)
	assert.False(t, manager.Validate(token))
}

func TestSessionManager_ConcurrentCreateUnique(t *testing.T) {
	manager := NewSessionManager(time.Hour, false, zap.NewNop())

	const goroutines = 50
	const perGoroutine = 20

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				token, err := manager.Create()
				assert.NoError(t, err)

				mu.Lock()
				assert.False(t, seen[token], "duplicate session token issued")
				seen[token] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, manager.Count())
}

func TestSessionManager_Reaper(t *testing.T) {
	manager := NewSessionManager(30*time.Millisecond, false, zap.NewNop())

	for i := 0; i < 5; i++ {
		_, err := manager.Create()
		require.NoError(t, err)
	}
	require.Equal(t, 5, manager.Count())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.StartReaper(ctx, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		return manager.Count() == 0
	}, time.Second, 10*time.Millisecond)
}
