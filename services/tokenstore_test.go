package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryKVStore(t *testing.T) {
	store := NewMemoryKVStore()
	defer store.Close()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.SetWithTTL("revoked:abc", "1", time.Hour)
	value, ok := store.Get("revoked:abc")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	store.Delete("revoked:abc")
	_, ok = store.Get("revoked:abc")
	assert.False(t, ok)
}

func TestMemoryKVStore_Expiry(t *testing.T) {
	store := NewMemoryKVStore()
	defer store.Close()

	store.SetWithTTL("short", "x", 20*time.Millisecond)

	_, ok := store.Get("short")
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = store.Get("short")
	assert.False(t, ok)
}

func TestMemoryKVStore_Overwrite(t *testing.T) {
	store := NewMemoryKVStore()
	defer store.Close()

	store.SetWithTTL("key", "old", 10*time.Millisecond)
	store.SetWithTTL("key", "new", time.Hour)

	time.Sleep(30 * time.Millisecond)

	value, ok := store.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}
