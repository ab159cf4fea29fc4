package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunOnce(t *testing.T) {
	var runs int64
	s := NewScheduler()

	s.RunOnce(Task{
		Name:     "tick",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			atomic.AddInt64(&runs, 1)
			return nil
		},
	})

	if atomic.LoadInt64(&runs) != 1 {
		t.Fatalf("expected exactly one run, got %d", runs)
	}
}

func TestSchedulerLoop(t *testing.T) {
	t.Run("task keeps its cadence after failures", func(t *testing.T) {
		var runs int64
		s := NewScheduler()
		s.AddTask(Task{
			Name:     "flaky",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				atomic.AddInt64(&runs, 1)
				return errors.New("upstream down")
			},
		})

		s.Start()
		time.Sleep(40 * time.Millisecond)
		s.Stop()

		if got := atomic.LoadInt64(&runs); got < 2 {
			t.Errorf("expected task to keep running after failures, got %d runs", got)
		}
	})

	t.Run("slow task does not delay another task", func(t *testing.T) {
		var fastRuns int64
		release := make(chan struct{})

		s := NewScheduler()
		s.AddTask(Task{
			Name:     "slow",
			Interval: time.Millisecond,
			Run: func(ctx context.Context) error {
				<-release
				return nil
			},
		})
		s.AddTask(Task{
			Name:     "fast",
			Interval: 5 * time.Millisecond,
			Run: func(ctx context.Context) error {
				atomic.AddInt64(&fastRuns, 1)
				return nil
			},
		})

		s.Start()
		time.Sleep(40 * time.Millisecond)
		close(release)
		s.Stop()

		if got := atomic.LoadInt64(&fastRuns); got < 2 {
			t.Errorf("expected fast task to run independently, got %d runs", got)
		}
	})

	t.Run("stop terminates loops", func(t *testing.T) {
		var runs int64
		s := NewScheduler()
		s.AddTask(Task{
			Name:     "tick",
			Interval: time.Millisecond,
			Run: func(ctx context.Context) error {
				atomic.AddInt64(&runs, 1)
				return nil
			},
		})

		s.Start()
		time.Sleep(10 * time.Millisecond)
		s.Stop()

		after := atomic.LoadInt64(&runs)
		time.Sleep(20 * time.Millisecond)
		if got := atomic.LoadInt64(&runs); got != after {
			t.Errorf("task still running after stop: %d -> %d", after, got)
		}
	})
}
