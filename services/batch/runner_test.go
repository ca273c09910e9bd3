package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunCountsFailuresWithoutStopping(t *testing.T) {
	r := NewRunner(time.Millisecond, 3)
	items := []int{1, 2, 3, 4, 5, 6}
	var calls int32

	res := Run(context.Background(), r, "test", items, func(_ context.Context, n int) error {
		atomic.AddInt32(&calls, 1)
		if n%2 == 0 {
			return errors.New("even")
		}
		return nil
	})

	if res.ToProcess != 6 || res.Processed != 3 || res.Errors != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if calls != 6 {
		t.Fatalf("expected every item to run, got %d", calls)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	r := NewRunner(0, 2)
	var inFlight, peak int32

	res := Run(context.Background(), r, "test", make([]struct{}, 10), func(context.Context, struct{}) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	if res.Processed != 10 {
		t.Fatalf("expected 10 processed, got %+v", res)
	}
	if peak > 2 {
		t.Fatalf("expected at most 2 in flight, saw %d", peak)
	}
}

func TestRunSpacesDispatches(t *testing.T) {
	r := NewRunner(20*time.Millisecond, 10)
	start := time.Now()
	Run(context.Background(), r, "test", []int{1, 2, 3}, func(context.Context, int) error { return nil })
	// Burst of one: the 2nd and 3rd dispatch each wait a full interval.
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Fatalf("expected dispatches to be spaced, took %v", elapsed)
	}
}

func TestRunCancelledContextCountsRemainingAsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Run(ctx, NewRunner(time.Millisecond, 1), "test", []int{1, 2, 3}, func(context.Context, int) error {
		t.Errorf("no item should run on a cancelled context")
		return nil
	})
	if res.ToProcess != 3 || res.Processed != 0 || res.Errors != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunEmpty(t *testing.T) {
	res := Run(context.Background(), NewRunner(time.Second, 1), "test", []string{}, func(context.Context, string) error { return nil })
	if res.ToProcess != 0 || res.Processed != 0 || res.Errors != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
