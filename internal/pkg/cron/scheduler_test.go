package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler()
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.AddJob("a", time.Minute, noop))
	assert.Error(t, s.AddJob("a", time.Minute, noop))
	assert.Error(t, s.AddJob("b", 0, noop))
}

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	s := NewScheduler()
	var calls atomic.Int32
	boom := errors.New("boom")

	require.NoError(t, s.AddJob("fails", time.Minute, func(context.Context) error {
		calls.Add(1)
		return boom
	}))
	require.NoError(t, s.AddJob("works", time.Minute, func(context.Context) error {
		calls.Add(1)
		return nil
	}))

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	require.NoError(t, s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	assert.Error(t, s.AddJob("late", time.Hour, func(context.Context) error { return nil }))

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

type fakeCompOff struct {
	compoff.CompOffService
	asOf []time.Time
}

func (f *fakeCompOff) ExpireDue(_ context.Context, asOf time.Time) (int, error) {
	f.asOf = append(f.asOf, asOf)
	return 1, nil
}

func TestCompOffJobs_ExpireUsesLocalDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	fake := &fakeCompOff{}
	jobs := NewCompOffJobs(fake, time.Hour, tokyo)
	// 2024-05-31 20:00 UTC is already June 1st in Tokyo.
	jobs.now = func() time.Time { return time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC) }

	s := NewScheduler()
	require.NoError(t, jobs.RegisterJobs(s))
	require.NoError(t, s.RunOnce(context.Background()))

	require.Len(t, fake.asOf, 1)
	assert.Equal(t, "2024-06-01", fake.asOf[0].Format(time.DateOnly))
}
