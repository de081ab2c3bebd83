package scheduler

import (
	"errors"
	"testing"

	"RentMarket/internal/market"
	"RentMarket/internal/model"
)

type fakeTicker struct {
	calls  []string
	batch  uint16
	result market.TickResult
	err    error
}

func (f *fakeTicker) Tick(caller string, maxBatch uint16) (market.TickResult, error) {
	f.calls = append(f.calls, caller)
	f.batch = maxBatch
	return f.result, f.err
}

func TestRunNowTicksAsCaller(t *testing.T) {
	ft := &fakeTicker{result: market.TickResult{Drained: []model.RentalOrder{{ID: 1}}}}
	s := NewScheduler(ft, "rentbw.sched", 25)
	s.RunNow()
	if len(ft.calls) != 1 || ft.calls[0] != "rentbw.sched" {
		t.Fatalf("calls = %v, want [rentbw.sched]", ft.calls)
	}
	if ft.batch != 25 {
		t.Errorf("batch = %d, want 25", ft.batch)
	}
	if s.Runs() != 1 {
		t.Errorf("runs = %d, want 1", s.Runs())
	}
}

func TestTickErrorsDoNotStopScheduler(t *testing.T) {
	for _, err := range []error{market.ErrNotInitialized, market.ErrLedgerMismatch, errors.New("disk full")} {
		ft := &fakeTicker{err: err}
		s := NewScheduler(ft, "x", 1)
		s.RunNow()
		s.RunNow()
		if s.Runs() != 2 {
			t.Errorf("%v: runs = %d, want 2", err, s.Runs())
		}
	}
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler(&fakeTicker{}, "x", 1)
	if err := s.Register("not a cron"); err == nil {
		t.Fatal("Register accepted a bad spec")
	}
	if err := s.Register("*/30 * * * * *"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&fakeTicker{}, "x", 1)
	if err := s.Register("0 0 0 1 1 *"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	s.Start()
	s.Stop()
}
