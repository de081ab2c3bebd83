package market

import (
	"fmt"

	"RentMarket/internal/model"
)

// maxDrainOnRent bounds the maintenance piggybacked on every rent action.
const maxDrainOnRent = 2

// QuoteRent prices req at env.Now without changing anything.
func QuoteRent(prev *model.MarketState, ledger Ledger, req model.RentRequest, env Env) (Quote, error) {
	if prev == nil {
		return Quote{}, ErrNotInitialized
	}
	next := Advance(*prev, env)
	matured, err := ledger.Matured(env.Now, maxDrainOnRent)
	if err != nil {
		return Quote{}, fmt.Errorf("load matured orders: %w", err)
	}
	for _, o := range matured {
		for _, r := range model.Resources {
			release(next.Resource(r), o.Weight(r))
		}
	}
	return price(&next, req, env)
}

// Rent rents fractions of the current net and cpu weight to req.Receiver
// for rent_days. Every check runs before the ledger is touched, so a
// rejected request changes nothing.
func Rent(prev *model.MarketState, ledger Ledger, req model.RentRequest, env Env) (model.MarketState, model.RentReceipt, error) {
	q, err := QuoteRent(prev, ledger, req, env)
	if err != nil {
		return model.MarketState{}, model.RentReceipt{}, err
	}

	next := Advance(*prev, env)
	if _, err := drain(&next, ledger, env.Now, maxDrainOnRent); err != nil {
		return model.MarketState{}, model.RentReceipt{}, err
	}

	order, err := ledger.Record(model.RentalOrder{
		Owner:     req.Receiver,
		NetWeight: q.NetWeight,
		CPUWeight: q.CPUWeight,
		NetFrac:   req.NetFrac,
		CPUFrac:   req.CPUFrac,
		Expires:   env.Now.Add(int64(next.RentDays) * model.SecondsPerDay),
	})
	if err != nil {
		return model.MarketState{}, model.RentReceipt{}, fmt.Errorf("record order: %w", err)
	}
	reserve(&next.Net, q.NetWeight)
	reserve(&next.CPU, q.CPUWeight)

	return next, model.RentReceipt{Order: order, Fee: q.Fee, NetFee: q.NetFee, CPUFee: q.CPUFee}, nil
}
