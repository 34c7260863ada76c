package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	job := RefresherFunc(func(context.Context) error { return nil })
	if _, err := NewScheduler("every so often", job, quietLogger()); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestRun_RefreshesImmediatelyAndStops(t *testing.T) {
	var calls int32
	job := RefresherFunc(func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("feed down")
	})

	s, err := NewScheduler("@every 1h", job, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("refresh was not run at startup")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRun_RefreshUsesCallerContext(t *testing.T) {
	seen := make(chan error, 1)
	job := RefresherFunc(func(ctx context.Context) error {
		seen <- ctx.Err()
		return ctx.Err()
	})

	s, err := NewScheduler("@every 1h", job, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case jobErr := <-seen:
		if !errors.Is(jobErr, context.Canceled) {
			t.Errorf("expected refresh to see canceled context, got %v", jobErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("refresh was not run at startup")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop on canceled context")
	}
}
