package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	c := NewTTL[string, int](time.Minute, 4)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}

func TestExpiry(t *testing.T) {
	c := NewTTL[string, int](time.Minute, 4)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	clock = clock.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	// The expired entry was dropped on read.
	assert.Zero(t, c.Len())
}

func TestEvictionAtCapacity(t *testing.T) {
	c := NewTTL[string, int](time.Minute, 2)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("old", 1)
	clock = clock.Add(time.Second)
	c.Set("newer", 2)
	clock = clock.Add(time.Second)

	// Full cache: inserting evicts the entry closest to expiry.
	c.Set("newest", 3)
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("old")
	assert.False(t, ok)
	_, ok = c.Get("newer")
	assert.True(t, ok)
	_, ok = c.Get("newest")
	assert.True(t, ok)
}

func TestSetPurgesExpiredBeforeEvicting(t *testing.T) {
	c := NewTTL[string, int](time.Minute, 2)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("stale", 1)
	clock = clock.Add(2 * time.Minute)
	c.Set("a", 2)
	c.Set("b", 3)

	// The stale entry made room, both fresh entries survive.
	_, ok := c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestInvalidate(t *testing.T) {
	c := NewTTL[string, int](time.Minute, 4)
	c.Set("a", 1)
	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}
