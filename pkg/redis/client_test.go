package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewFromRedis(rdb), mr
}

func TestClient_SetGetDelete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "carrental:user:1", []byte(`{"id":1}`), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, found, err := client.Get(ctx, "carrental:user:1")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if string(data) != `{"id":1}` {
		t.Errorf("Get() data = %s", data)
	}

	if err := client.Delete(ctx, "carrental:user:1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, found, err = client.Get(ctx, "carrental:user:1")
	if err != nil || found {
		t.Errorf("Expected miss after delete, found=%v err=%v", found, err)
	}
}

func TestClient_TTLExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, found, _ := client.Get(ctx, "k"); found {
		t.Error("Expected key to expire")
	}
}

func TestClient_Stats(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_ = client.Set(ctx, "a", []byte("1"), time.Minute)
	_ = client.Set(ctx, "b", []byte("2"), time.Minute)

	stats, err := client.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats["keys"] != int64(2) {
		t.Errorf("keys = %v, want 2", stats["keys"])
	}
}

func TestClient_Disabled(t *testing.T) {
	client := &Client{}
	ctx := context.Background()

	if client.IsEnabled() {
		t.Fatal("Expected disabled client")
	}
	if err := client.Ping(ctx); !errors.Is(err, ErrDisabled) {
		t.Errorf("Ping() error = %v, want ErrDisabled", err)
	}
	if _, _, err := client.Get(ctx, "k"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Get() error = %v, want ErrDisabled", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
