package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type fakeSweeper struct {
	mu      sync.Mutex
	calls   int
	expired []int64
	err     error
}

func (f *fakeSweeper) ResetExpired(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.expired, f.err
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestScheduler_Tick_SweepsExpired(t *testing.T) {
	sweeper := &fakeSweeper{expired: []int64{1, 2}}

	s := New(sweeper, 50*time.Millisecond, newTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, sweeper.callCount(), 1)
}

func TestScheduler_Tick_HandlesError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("sweep failed")}

	s := New(sweeper, 50*time.Millisecond, newTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, sweeper.callCount(), 1)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	sweeper := &fakeSweeper{}

	s := New(sweeper, time.Second, newTestLogger(t)) // interval longer than test

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// success
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

func TestScheduler_MultipleTicks(t *testing.T) {
	sweeper := &fakeSweeper{}

	s := New(sweeper, 30*time.Millisecond, newTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, sweeper.callCount(), 3)
}
