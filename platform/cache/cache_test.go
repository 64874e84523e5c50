package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"autocenter_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, time.Minute, logger.New("test"))
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c := newTestCache(t)

	var dest payload
	if err := c.Get(context.Background(), "absent", &dest); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestSetThenGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "k", payload{Name: "BMW", Count: 3})

	var dest payload
	if err := c.Get(ctx, "k", &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Name != "BMW" || dest.Count != 3 {
		t.Fatalf("unexpected value: %+v", dest)
	}
}

func TestDeleteInvalidates(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "a", payload{Name: "x"})
	c.Set(ctx, "b", payload{Name: "y"})
	c.Delete(ctx, "a", "b")

	var dest payload
	if err := c.Get(ctx, "a", &dest); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss after delete, got %v", err)
	}
}

func TestGetOrLoadCachesResult(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(ctx context.Context) (interface{}, error) {
		calls++
		return payload{Name: "loaded", Count: calls}, nil
	}

	var first payload
	if err := c.GetOrLoad(ctx, "k", &first, load); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var second payload
	if err := c.GetOrLoad(ctx, "k", &second, load); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected loader to run once, ran %d times", calls)
	}
	if second.Name != "loaded" || second.Count != 1 {
		t.Fatalf("expected cached value on second read, got %+v", second)
	}
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	c := newTestCache(t)

	loadErr := errors.New("db down")
	var dest payload
	err := c.GetOrLoad(context.Background(), "k", &dest, func(ctx context.Context) (interface{}, error) {
		return nil, loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest payload
	if err := c.Get(ctx, "k", &dest); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss from nil cache, got %v", err)
	}
	c.Set(ctx, "k", payload{})
	c.Delete(ctx, "k")
	if err := c.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// GetOrLoad on a disabled cache still serves the loader result.
	if err := c.GetOrLoad(ctx, "k", &dest, func(ctx context.Context) (interface{}, error) {
		return payload{Name: "direct"}, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Name != "direct" {
		t.Fatalf("expected loader value, got %+v", dest)
	}
}

func TestNewWithEmptyURLDisablesCache(t *testing.T) {
	c, err := New("", time.Minute, logger.New("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil cache for empty URL")
	}

	if _, err := New("not-a-url", time.Minute, logger.New("test")); err == nil {
		t.Fatal("expected error for malformed Redis URL")
	}
}
