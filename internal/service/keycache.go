package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// KeySet is a set of HMAC signing keys indexed by key id. Current names the
// key used to sign new tokens; the others still verify older tokens.
type KeySet struct {
	Current string
	Keys    map[string][]byte
}

// KeySource loads the current KeySet, e.g. from configuration or a secret store.
type KeySource func(ctx context.Context) (KeySet, error)

// StaticKeys returns a KeySource serving a single key under id "default".
func StaticKeys(secret string) KeySource {
	return func(context.Context) (KeySet, error) {
		if secret == "" {
			return KeySet{}, errors.New("signing key is empty")
		}
		return KeySet{Current: "default", Keys: map[string][]byte{"default": []byte(secret)}}, nil
	}
}

// KeyCache caches a KeySet for ttl. Expiry is checked on every read; a failed
// refresh keeps serving the stale set if one exists.
type KeyCache struct {
	source KeySource
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	set       KeySet
	fetchedAt time.Time
	loaded    bool
}

func NewKeyCache(source KeySource, ttl time.Duration) *KeyCache {
	return &KeyCache{source: source, ttl: ttl, now: time.Now}
}

// Get returns the cached set, refreshing it when older than ttl.
func (c *KeyCache) Get(ctx context.Context) (KeySet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.set, nil
	}

	set, err := c.source(ctx)
	if err == nil && set.Keys[set.Current] == nil {
		err = fmt.Errorf("current key %q missing from key set", set.Current)
	}
	if err != nil {
		if c.loaded {
			return c.set, nil
		}
		return KeySet{}, fmt.Errorf("load signing keys: %w", err)
	}

	c.set = set
	c.fetchedAt = c.now()
	c.loaded = true
	return set, nil
}

// Invalidate forces the next Get to reload.
func (c *KeyCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}
