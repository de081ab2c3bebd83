package executor

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"RentMarket/internal/market"
	"RentMarket/internal/metrics"
	"RentMarket/internal/model"
	"RentMarket/internal/recorder"
	"RentMarket/internal/stake"
	"RentMarket/internal/store"
)

// Executor is the host of the market. It serializes actions, supplies the
// clock and the stake reference, and commits each action in one storage
// transaction: a failed action leaves the state record and the order table
// exactly as they were.
type Executor struct {
	mu       sync.Mutex
	store    *store.Store
	stake    stake.Provider
	symbol   model.Symbol
	now      func() time.Time
	recorder recorder.Recorder
	metrics  *metrics.Metrics
}

// Options wires an Executor. Store is required; the rest have defaults.
type Options struct {
	Store      *store.Store
	Stake      stake.Provider
	CoreSymbol model.Symbol
	Clock      func() time.Time
	Recorder   recorder.Recorder
	Metrics    *metrics.Metrics
}

func New(opts Options) *Executor {
	e := &Executor{
		store:    opts.Store,
		stake:    opts.Stake,
		symbol:   opts.CoreSymbol,
		now:      opts.Clock,
		recorder: opts.Recorder,
		metrics:  opts.Metrics,
	}
	if e.stake == nil {
		e.stake = stake.Static{}
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.recorder == nil {
		e.recorder = recorder.NewNoopRecorder()
	}
	return e
}

func (e *Executor) env() (market.Env, error) {
	total, err := e.stake.TotalWeight()
	if err != nil {
		return market.Env{}, fmt.Errorf("total weight from %s: %w", e.stake.Name(), err)
	}
	return market.Env{
		Now:         model.TimestampOf(e.now()),
		TotalWeight: total,
		CoreSymbol:  e.symbol,
	}, nil
}

// Configure applies update. The first configure initializes the market.
func (e *Executor) Configure(update model.ConfigUpdate) (model.MarketState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.env()
	if err != nil {
		return model.MarketState{}, err
	}
	var next model.MarketState
	err = e.store.Update(func(tx *store.Tx) error {
		prev, err := tx.State()
		if err != nil {
			return err
		}
		next, err = market.Configure(prev, update, env)
		if err != nil {
			return err
		}
		return tx.PutState(next)
	})
	if err != nil {
		log.Printf("[WARN] configure rejected: %v", err)
		return model.MarketState{}, err
	}

	log.Printf("[INFO] market configured at %s: net ratio=%d cpu ratio=%d rent_days=%d",
		env.Now, next.Net.WeightRatio, next.CPU.WeightRatio, next.RentDays)
	if err := e.recorder.RecordConfigure(&recorder.ConfigureEvent{
		Time:     env.Now,
		Config:   next.Config(),
		Snapshot: recorder.SnapshotOf(&next),
	}); err != nil {
		log.Printf("[ERROR] record configure: %v", err)
	}
	e.observe(&next)
	return next, nil
}

// Tick runs one maintenance pass on behalf of caller.
func (e *Executor) Tick(caller string, maxBatch uint16) (market.TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.env()
	if err != nil {
		return market.TickResult{Caller: caller}, err
	}
	var (
		next model.MarketState
		res  market.TickResult
	)
	err = e.store.Update(func(tx *store.Tx) error {
		prev, err := tx.State()
		if err != nil {
			return err
		}
		next, res, err = market.Tick(prev, tx.Orders(), caller, maxBatch, env)
		if err != nil {
			return err
		}
		return tx.PutState(next)
	})
	if err != nil {
		if !errors.Is(err, market.ErrNotInitialized) {
			log.Printf("[ERROR] tick by %s: %v", caller, err)
		}
		return market.TickResult{Caller: caller}, err
	}

	if len(res.Drained) > 0 {
		log.Printf("[INFO] tick by %s drained %d orders", caller, len(res.Drained))
	}
	if err := e.recorder.RecordTick(&recorder.TickEvent{
		Time:     env.Now,
		Caller:   caller,
		Drained:  len(res.Drained),
		Snapshot: recorder.SnapshotOf(&next),
	}); err != nil {
		log.Printf("[ERROR] record tick: %v", err)
	}
	if e.metrics != nil {
		e.metrics.Tick(len(res.Drained))
	}
	e.observe(&next)
	return res, nil
}

// Rent commits a rental for req.
func (e *Executor) Rent(req model.RentRequest) (model.RentReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.env()
	if err != nil {
		return model.RentReceipt{}, err
	}
	var (
		next    model.MarketState
		receipt model.RentReceipt
		drained int
	)
	err = e.store.Update(func(tx *store.Tx) error {
		prev, err := tx.State()
		if err != nil {
			return err
		}
		orders := tx.Orders()
		before := orders.Len()
		next, receipt, err = market.Rent(prev, orders, req, env)
		if err != nil {
			return err
		}
		drained = before + 1 - orders.Len()
		return tx.PutState(next)
	})
	if err != nil {
		log.Printf("[WARN] rent for %s rejected: %v", req.Receiver, err)
		return model.RentReceipt{}, err
	}

	log.Printf("[INFO] order %d: %s rented net=%d cpu=%d to %s for %s, expires %s",
		receipt.Order.ID, req.Payer, receipt.Order.NetWeight, receipt.Order.CPUWeight,
		req.Receiver, receipt.Fee, receipt.Order.Expires)
	if err := e.recorder.RecordRent(&recorder.RentEvent{
		Time:     env.Now,
		Payer:    req.Payer,
		Receipt:  receipt,
		Snapshot: recorder.SnapshotOf(&next),
	}); err != nil {
		log.Printf("[ERROR] record rent: %v", err)
	}
	if e.metrics != nil {
		e.metrics.Rent(receipt.Fee, drained)
	}
	e.observe(&next)
	return receipt, nil
}

// Quote prices req at the current time without committing anything.
func (e *Executor) Quote(req model.RentRequest) (market.Quote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.env()
	if err != nil {
		return market.Quote{}, err
	}
	var q market.Quote
	err = e.store.View(func(tx *store.Tx) error {
		prev, err := tx.State()
		if err != nil {
			return err
		}
		q, err = market.QuoteRent(prev, tx.Orders(), req, env)
		return err
	})
	return q, err
}

// State returns the market advanced to the current time. Nothing is written.
func (e *Executor) State() (model.MarketState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	env, err := e.env()
	if err != nil {
		return model.MarketState{}, err
	}
	var s model.MarketState
	err = e.store.View(func(tx *store.Tx) error {
		prev, err := tx.State()
		if err != nil {
			return err
		}
		if prev == nil {
			return market.ErrNotInitialized
		}
		s = market.Advance(*prev, env)
		return nil
	})
	return s, err
}

// Orders lists up to limit outstanding orders, soonest maturity first.
func (e *Executor) Orders(limit int) ([]model.RentalOrder, error) {
	var out []model.RentalOrder
	err := e.store.View(func(tx *store.Tx) error {
		var err error
		out, err = tx.Orders().List(limit)
		return err
	})
	return out, err
}

// Price returns the current marginal price of r.
func (e *Executor) Price(r model.Resource) (model.Asset, error) {
	s, err := e.State()
	if err != nil {
		return model.Asset{}, err
	}
	return market.MarginalPriceAsset(s.Resource(r), s.MinRentPrice)
}

func (e *Executor) observe(s *model.MarketState) {
	if e.metrics == nil {
		return
	}
	prices := make(map[model.Resource]float64, len(model.Resources))
	for _, r := range model.Resources {
		if p, err := market.MarginalPrice(s.Resource(r)); err == nil {
			prices[r] = p
		}
	}
	e.metrics.Observe(s, prices)
}
