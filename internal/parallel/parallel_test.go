package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 4}

	var counter int64
	n := 1000
	seen := make([]int32, n)

	err := For(n, cfg, func(i int) error {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("index %d visited %d times", i, c)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var order []int
	err := For(10, cfg, func(i int) error {
		order = append(order, i)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, expected ascending", order)
		}
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Work below MinChunkSize falls back to sequential.
	cfg := DefaultConfig()
	n := cfg.MinChunkSize - 1

	var counter int64
	if err := For(n, cfg, func(_ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

// TestFor_LowestError verifies the reported error is the lowest failing
// index regardless of scheduling.
func TestFor_LowestError(t *testing.T) {
	for _, cfg := range []Config{
		{Enabled: false},
		{Enabled: true, NumWorkers: 8, MinChunkSize: 1},
		{Enabled: true, NumWorkers: 3, MinChunkSize: 5},
	} {
		err := For(100, cfg, func(i int) error {
			if i == 37 || i == 80 {
				return fmt.Errorf("item %d", i)
			}
			return nil
		})
		if err == nil || err.Error() != "item 37" {
			t.Errorf("cfg %+v: got %v, expected item 37", cfg, err)
		}
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	err := For(0, DefaultConfig(), func(_ int) error {
		called = true
		return errors.New("unreachable")
	})
	if err != nil || called {
		t.Errorf("For(0) called f or failed: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NumWorkers < 1 {
		t.Errorf("NumWorkers = %d, expected >= 1", cfg.NumWorkers)
	}
	if cfg.Enabled != (cfg.NumWorkers > 1) {
		t.Errorf("Enabled = %v with %d workers", cfg.Enabled, cfg.NumWorkers)
	}
}

func BenchmarkFor(b *testing.B) {
	n := 10000
	work := func(i int) error {
		_ = i * i
		return nil
	}

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			_ = For(n, cfg, work)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfg := Config{Enabled: false}
		for i := 0; i < b.N; i++ {
			_ = For(n, cfg, work)
		}
	})
}
