package permit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemaphoreBoundsConcurrency(t *testing.T) {
	sem := New(2)
	var active, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sem.Acquire(context.Background()); err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			defer sem.Release()
			now := active.Add(1)
			for {
				seen := peak.Load()
				if now <= seen || peak.CompareAndSwap(seen, now) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			active.Add(-1)
		}()
	}
	wg.Wait()
	if got := peak.Load(); got > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", got)
	}
}

func TestSemaphoreAcquireCancellation(t *testing.T) {
	sem := New(1)
	if err := sem.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := sem.Acquire(ctx); err == nil {
		t.Fatal("expected context error while semaphore is full")
	}
	sem.Release()
}

func TestNilSemaphoreIsUnbounded(t *testing.T) {
	var sem *Semaphore
	for i := 0; i < 100; i++ {
		if err := sem.Acquire(context.Background()); err != nil {
			t.Fatalf("acquire: %v", err)
		}
	}
	sem.Release()
	if sem.InUse() != 0 {
		t.Error("nil semaphore reports permits in use")
	}
}

func TestNewRejectsZeroCapacity(t *testing.T) {
	if sem := New(0); sem != nil {
		t.Error("capacity 0 should yield nil semaphore")
	}
}
