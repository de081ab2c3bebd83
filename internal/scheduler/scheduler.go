package scheduler

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"RentMarket/internal/market"
)

// Ticker runs one maintenance pass.
type Ticker interface {
	Tick(caller string, maxBatch uint16) (market.TickResult, error)
}

// Scheduler drives periodic maintenance so matured rentals are released
// even when nobody rents.
type Scheduler struct {
	Cron     *cron.Cron
	Ticker   Ticker
	Caller   string
	MaxBatch uint16

	mu   sync.Mutex
	runs int
}

// NewScheduler creates a Scheduler that ticks as caller, draining up to
// maxBatch orders per pass.
func NewScheduler(t Ticker, caller string, maxBatch uint16) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Ticker:   t,
		Caller:   caller,
		MaxBatch: maxBatch,
	}
}

// Register schedules the tick task on spec (six fields, seconds first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the tick task immediately.
func (s *Scheduler) RunNow() {
	s.tickTask()
}

// Runs reports how many tick tasks have completed, successful or not.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) tickTask() {
	defer func() {
		s.mu.Lock()
		s.runs++
		s.mu.Unlock()
	}()

	res, err := s.Ticker.Tick(s.Caller, s.MaxBatch)
	switch {
	case errors.Is(err, market.ErrNotInitialized):
		log.Println("[WARN] tick skipped: market not configured yet")
	case err != nil:
		log.Printf("[ERROR] scheduled tick: %v", err)
	case len(res.Drained) == int(s.MaxBatch) && s.MaxBatch > 0:
		log.Printf("[WARN] tick drained a full batch of %d, backlog may remain", s.MaxBatch)
	}
}
