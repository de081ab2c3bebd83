package market

import (
	"fmt"

	"RentMarket/internal/model"
)

// TickResult reports what a maintenance pass did.
type TickResult struct {
	Caller  string
	Drained []model.RentalOrder
}

// Tick is the maintenance action. It advances both resources to env.Now and
// drains up to maxBatch matured orders from ledger, releasing their capacity.
// Anyone may call it. With no new maturities, repeating it at the same
// timestamp returns an identical state.
//
// After draining, the outstanding orders must sum to each resource's
// utilization. A mismatch fails the pass and nothing is committed.
func Tick(prev *model.MarketState, ledger Ledger, caller string, maxBatch uint16, env Env) (model.MarketState, TickResult, error) {
	res := TickResult{Caller: caller}
	if prev == nil {
		return model.MarketState{}, res, ErrNotInitialized
	}
	next := Advance(*prev, env)

	drained, err := drain(&next, ledger, env.Now, maxBatch)
	if err != nil {
		return model.MarketState{}, res, err
	}
	res.Drained = drained
	if err := checkLedger(&next, ledger); err != nil {
		return model.MarketState{}, res, err
	}
	return next, res, nil
}

func checkLedger(s *model.MarketState, ledger Ledger) error {
	for _, r := range model.Resources {
		sum, err := ledger.Utilization(r)
		if err != nil {
			return fmt.Errorf("sum %s orders: %w", r, err)
		}
		if used := s.Resource(r).Utilization; sum != used {
			return fmt.Errorf("%w: %s orders %d, utilization %d", ErrLedgerMismatch, r, sum, used)
		}
	}
	return nil
}

// drain erases matured orders and releases their weight, each exactly once.
func drain(s *model.MarketState, ledger Ledger, now model.Timestamp, maxBatch uint16) ([]model.RentalOrder, error) {
	if maxBatch == 0 {
		return nil, nil
	}
	matured, err := ledger.Matured(now, maxBatch)
	if err != nil {
		return nil, fmt.Errorf("load matured orders: %w", err)
	}
	for _, o := range matured {
		if err := ledger.Erase(o); err != nil {
			return nil, fmt.Errorf("erase order %d: %w", o.ID, err)
		}
		for _, r := range model.Resources {
			release(s.Resource(r), o.Weight(r))
		}
	}
	return matured, nil
}
