package service

import (
	"context"
	"sync"
)

// KeyLock serializes work per key inside one process. Entries are reference
// counted and dropped once nobody holds or waits for them.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  chan struct{}
	refs int
}

// NewKeyLock returns an empty lock table. Services that touch the same
// records must share one.
func NewKeyLock() *KeyLock {
	return &KeyLock{entries: make(map[string]*lockEntry)}
}

// Lock blocks until key is free or ctx is done. The returned function
// releases the key and must be called exactly once.
func (l *KeyLock) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			l.release(key, e)
		}, nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}
}

func (l *KeyLock) release(key string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *KeyLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func basicKey(userID string) string { return "basic:" + userID }

func fullKey(userID string) string { return "full:" + userID }

// variantsKey guards every variant of a user as a whole. It is taken before
// any variantKey of the same user.
func variantsKey(userID string) string { return "variants:" + userID }

func variantKey(userID, variantID string) string { return "variant:" + userID + ":" + variantID }
