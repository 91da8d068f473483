package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoadingCache_LoadsOnMissThenHits(t *testing.T) {
	var calls atomic.Int64
	c := NewLoading(time.Minute, func(ctx context.Context, key string) (string, error) {
		calls.Add(1)
		return "profile:" + key, nil
	})

	ctx := context.Background()
	v, err := c.Get(ctx, "0xA")
	if err != nil || v != "profile:0xA" {
		t.Fatalf("expected loaded value, got v=%q err=%v", v, err)
	}
	v, err = c.Get(ctx, "0xA")
	if err != nil || v != "profile:0xA" {
		t.Fatalf("expected cached value, got v=%q err=%v", v, err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly 1 load, got %d", calls.Load())
	}
}

func TestLoadingCache_FailedLoadIsNotCached(t *testing.T) {
	var calls atomic.Int64
	boom := errors.New("upstream down")
	c := NewLoading(time.Minute, func(ctx context.Context, key string) (int, error) {
		calls.Add(1)
		if calls.Load() == 1 {
			return 0, boom
		}
		return 42, nil
	})

	ctx := context.Background()
	if _, err := c.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if c.IsValid("k") {
		t.Fatalf("failed load must not be cached")
	}

	// The next Get retries the loader instead of serving a negative entry.
	v, err := c.Get(ctx, "k")
	if err != nil || v != 42 {
		t.Fatalf("expected retry to succeed, got v=%v err=%v", v, err)
	}
}

func TestLoadingCache_CoalescesConcurrentMisses(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	c := NewLoading(time.Minute, func(ctx context.Context, key string) (string, error) {
		calls.Add(1)
		<-release
		return "v", nil
	})

	ctx := context.Background()
	const goroutines = 20
	var wg sync.WaitGroup
	started := make(chan struct{}, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			v, err := c.Get(ctx, "hot")
			if err != nil || v != "v" {
				t.Errorf("expected v, got v=%q err=%v", v, err)
			}
		}()
	}
	for i := 0; i < goroutines; i++ {
		<-started
	}
	// All goroutines are now racing on the same cold key; let the single
	// in-flight load complete.
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected concurrent misses to share one load, got %d", calls.Load())
	}
}

func TestLoadingCache_InvalidateForcesReload(t *testing.T) {
	var calls atomic.Int64
	c := NewLoading(time.Minute, func(ctx context.Context, key string) (int, error) {
		return int(calls.Add(1)), nil
	})

	ctx := context.Background()
	v, _ := c.Get(ctx, "k")
	if v != 1 {
		t.Fatalf("expected first load, got %d", v)
	}
	c.Invalidate("k")
	v, _ = c.Get(ctx, "k")
	if v != 2 {
		t.Fatalf("expected reload after invalidate, got %d", v)
	}
}
