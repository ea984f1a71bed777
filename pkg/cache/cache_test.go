package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache(0)
	defer c.Close()

	c.Set("k", []byte("v"), time.Minute)

	got, ok := c.Get("k")
	if !ok || string(got) != "v" {
		t.Fatalf("Get() = %q, %v", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	stats := c.Stats()
	if stats["hits"] != int64(1) || stats["misses"] != int64(1) {
		t.Errorf("stats = %v", stats)
	}
}

func TestCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCache(0)
	defer c.Close()
	c.now = func() time.Time { return now }

	c.Set("k", []byte("v"), time.Minute)

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("Expected expired entry to miss")
	}

	c.deleteExpired()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after sweep, want 0", c.Len())
	}
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(0)
	defer c.Close()

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	c.Delete("a", "b")

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCache_CloseTwice(t *testing.T) {
	c := NewCache(time.Millisecond)
	c.Close()
	c.Close()
}
