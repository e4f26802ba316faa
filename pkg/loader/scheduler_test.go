package loader

import (
	"context"
	"testing"
	"time"

	errs "github.com/matzehuels/neoscope/pkg/errors"
)

func TestNewScheduler_InvalidSpec(t *testing.T) {
	r := newTestRunner(t, &fakeFetcher{})
	_, err := NewScheduler(r, "every now and then", Options{})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestNewScheduler_InvalidRange(t *testing.T) {
	r := newTestRunner(t, &fakeFetcher{})
	_, err := NewScheduler(r, "@every 1h", Options{StartDate: "2024-01-01", EndDate: "2024-03-01"})
	if !errs.Is(err, errs.ErrCodeInvalidDateRange) {
		t.Errorf("error = %v, want INVALID_DATE_RANGE", err)
	}
}

func TestScheduler_RunNowForcesRefresh(t *testing.T) {
	f := &fakeFetcher{}
	r := newTestRunner(t, f)
	s, err := NewScheduler(r, "@every 1h", Options{})
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, err := s.RunNow(context.Background()); err != nil {
			t.Fatalf("RunNow: %v", err)
		}
	}
	if f.calls.Load() != 2 || !f.refresh.Load() {
		t.Errorf("scheduled runs should always refetch: calls=%d refresh=%v", f.calls.Load(), f.refresh.Load())
	}
}

func TestScheduler_Fires(t *testing.T) {
	f := &fakeFetcher{}
	r := newTestRunner(t, f)
	s, err := NewScheduler(r, "@every 1s", Options{})
	if err != nil {
		t.Fatal(err)
	}

	s.Start(context.Background())
	defer s.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := r.Store.Dataset(); ok {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Error("scheduled load did not run")
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	r := newTestRunner(t, &fakeFetcher{})
	s, err := NewScheduler(r, "@every 1h", Options{})
	if err != nil {
		t.Fatal(err)
	}
	s.Stop()
}
