package timeline

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client), mr
}

func TestGetOrComputeReplaysStoredBytes(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte(`{"n":1}`), nil
	}

	first, hit, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, compute)
	if err != nil || hit {
		t.Fatalf("first read must miss: hit=%v err=%v", hit, err)
	}

	// the stored value changes underneath, the cached response must not
	second, hit, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, func() ([]byte, error) {
		return []byte(`{"n":2}`), nil
	})
	if err != nil || !hit {
		t.Fatalf("second read must hit: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("cached bytes changed: %s vs %s", first, second)
	}
	if calls != 1 {
		t.Fatalf("compute ran %d times, want 1", calls)
	}
}

func TestGetOrComputeTTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if _, _, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, func() ([]byte, error) {
		return []byte("old"), nil
	}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	mr.FastForward(21 * time.Second)

	body, hit, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, func() ([]byte, error) {
		return []byte("fresh"), nil
	})
	if err != nil || hit {
		t.Fatalf("expired slot must recompute: hit=%v err=%v", hit, err)
	}
	if string(body) != "fresh" {
		t.Fatalf("expected fresh body, got %s", body)
	}
}

func TestInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, _, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, func() ([]byte, error) {
		return []byte("old"), nil
	}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	if err := cache.Invalidate(ctx, IndexKey); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	body, hit, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, func() ([]byte, error) {
		return []byte("fresh"), nil
	})
	if err != nil || hit {
		t.Fatalf("invalidated slot must recompute: hit=%v err=%v", hit, err)
	}
	if string(body) != "fresh" {
		t.Fatalf("expected fresh body, got %s", body)
	}
}

func TestGetOrComputeWithoutRedis(t *testing.T) {
	cache := NewCache(nil)
	ctx := context.Background()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("live"), nil
	}
	for i := 0; i < 2; i++ {
		body, hit, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, compute)
		if err != nil || hit {
			t.Fatalf("no redis must never hit: hit=%v err=%v", hit, err)
		}
		if string(body) != "live" {
			t.Fatalf("unexpected body: %s", body)
		}
	}
	if calls != 2 {
		t.Fatalf("compute ran %d times, want 2", calls)
	}
	if err := cache.Invalidate(ctx, IndexKey); err != nil {
		t.Fatalf("invalidate without redis: %v", err)
	}
}

func TestGetOrComputeError(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	wantErr := errors.New("compose failed")
	if _, _, err := cache.GetOrCompute(ctx, IndexKey, 20*time.Second, func() ([]byte, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if mr.Exists(IndexKey) {
		t.Fatalf("failed compute must not populate the cache")
	}
}
