package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllTasks(t *testing.T) {
	const n = 50
	p := NewPool(4, n)
	results := p.Run(context.Background())

	var ran atomic.Int64
	for i := 0; i < n; i++ {
		p.Submit(func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	p.Close()

	got := 0
	for res := range results {
		if res.Err != nil {
			t.Fatalf("unexpected task error: %v", res.Err)
		}
		got++
	}
	if got != n {
		t.Fatalf("expected %d results, got %d", n, got)
	}
	if ran.Load() != n {
		t.Fatalf("expected %d tasks to run, got %d", n, ran.Load())
	}
}

func TestPoolReportsTaskErrors(t *testing.T) {
	p := NewPool(2, 4)
	results := p.Run(context.Background())

	boom := errors.New("boom")
	p.Submit(func(context.Context) error { return boom })
	p.Submit(func(context.Context) error { return nil })
	p.Close()

	var failed int
	for res := range results {
		if res.Err != nil {
			failed++
			if !errors.Is(res.Err, boom) {
				t.Fatalf("unexpected error: %v", res.Err)
			}
		}
	}
	if failed != 1 {
		t.Fatalf("expected 1 failed task, got %d", failed)
	}
}

func TestPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewPool(1, 1)
	results := p.Run(ctx)

	cancel()
	for range results {
	}
	// Reaching here means the workers exited and closed the channel.
}
