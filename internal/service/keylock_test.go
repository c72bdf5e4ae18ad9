package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := NewKeyLock()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		running atomic.Int32
		peak    atomic.Int32
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locks.Lock(ctx, "k")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := running.Add(1)
			if n > peak.Load() {
				peak.Store(n)
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak.Load())
	assert.Zero(t, locks.size())
}

func TestKeyLock_DistinctKeysDoNotBlock(t *testing.T) {
	locks := NewKeyLock()
	ctx := context.Background()

	unlockA, err := locks.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB, err := locks.Lock(ctx, "b")
		if err == nil {
			unlockB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestKeyLock_ContextCancelled(t *testing.T) {
	locks := NewKeyLock()

	unlock, err := locks.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = locks.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Zero(t, locks.size())
}

func TestLockKeys(t *testing.T) {
	assert.Equal(t, "basic:u", basicKey("u"))
	assert.Equal(t, "full:u", fullKey("u"))
	assert.Equal(t, "variant:u:v", variantKey("u", "v"))
	assert.Equal(t, "variants:u", variantsKey("u"))
	assert.Equal(t, fullKey("u"), channelKey("full", "u"))
	assert.Equal(t, basicKey("u"), channelKey("basic", "u"))
}
