package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestNewPacer_NegativeRate(t *testing.T) {
	if _, err := NewPacer(-1, testLogger()); err == nil {
		t.Error("NewPacer(-1) should return an error")
	}
}

func TestAcquire_Unbounded(t *testing.T) {
	pacer, err := NewPacer(0, testLogger())
	if err != nil {
		t.Fatalf("NewPacer failed: %v", err)
	}

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := pacer.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("unbounded pacer took %v for 100 permits, expected near-zero", elapsed)
	}
}

func TestAcquire_EnforcesSpacing(t *testing.T) {
	// 20 permits/s → 50ms spacing → 3 gaps for 4 permits ≥ 150ms.
	pacer, err := NewPacer(20, testLogger())
	if err != nil {
		t.Fatalf("NewPacer failed: %v", err)
	}

	start := time.Now()
	for i := 0; i < 4; i++ {
		if err := pacer.Acquire(context.Background()); err != nil {
			t.Fatalf("Acquire failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 150*time.Millisecond {
		t.Errorf("4 permits at 20/s took %v, want >= 150ms", elapsed)
	}
}

func TestAcquire_ConcurrentCallersShareCeiling(t *testing.T) {
	pacer, err := NewPacer(20, testLogger())
	if err != nil {
		t.Fatalf("NewPacer failed: %v", err)
	}

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pacer.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	// Concurrency must not raise the throughput ceiling.
	if elapsed < 150*time.Millisecond {
		t.Errorf("4 concurrent permits at 20/s took %v, want >= 150ms", elapsed)
	}
}

func TestAcquire_ContextCancelled(t *testing.T) {
	pacer, err := NewPacer(1, testLogger())
	if err != nil {
		t.Fatalf("NewPacer failed: %v", err)
	}

	// Consume the immediate permit so the next Acquire must wait.
	if err := pacer.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := pacer.Acquire(ctx); err == nil {
		t.Error("Acquire should fail when context expires during the wait")
	}
}

func TestInterval(t *testing.T) {
	pacer, _ := NewPacer(2, testLogger())
	if got := pacer.Interval(); got != 500*time.Millisecond {
		t.Errorf("Interval() = %v, want 500ms", got)
	}

	unbounded, _ := NewPacer(0, testLogger())
	if got := unbounded.Interval(); got != 0 {
		t.Errorf("Interval() = %v, want 0 for unbounded pacer", got)
	}
}
