package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	var runs atomic.Int32
	s := NewScheduler(quietLogger())
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(quietLogger())
	s.AddJob("noop", time.Hour, func(ctx context.Context) error { return nil })
	s.Start(ctx)

	cancel()
	s.Stop()
}

func TestScheduler_SkipsNonPositiveInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(quietLogger())
	s.AddJob("disabled", 0, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Zero(t, runs.Load())
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(quietLogger())
	s.AddJob("failing", time.Minute, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("upstream down")
	})
	s.AddJob("ok", time.Minute, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler(nil)
	s.Stop()
}
