package market

import (
	"fmt"

	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

// scarcity scales the curve by how far the weight schedule is from its
// target. It is 1 when the current ratio equals the target ratio.
func scarcity(rs *model.ResourceState) float64 {
	if rs.WeightRatio <= 0 || rs.TargetWeightRatio <= 0 {
		return 1
	}
	return float64(rs.TargetWeightRatio) / float64(rs.WeightRatio)
}

// MarginalPrice is the instantaneous price, in target_price units, of
// renting the full weight of rs at its current adjusted utilization:
//
//	target_price * (target_ratio / ratio) * (1 - adjusted/weight)^-exponent
//
// It equals target_price when the ratio is at its target and nothing is
// rented, and diverges as adjusted utilization approaches weight.
func MarginalPrice(rs *model.ResourceState) (float64, error) {
	if rs.Weight <= 0 || rs.AdjustedUtilization >= rs.Weight {
		return 0, ErrInsufficientCapacity
	}
	x := float64(rs.AdjustedUtilization) / float64(rs.Weight)
	return float64(rs.TargetPrice.Amount) * scarcity(rs) * calculator.Surcharge(x, rs.Exponent), nil
}

// MarginalPriceAsset is MarginalPrice rounded up and floored at minPrice.
func MarginalPriceAsset(rs *model.ResourceState, minPrice model.Asset) (model.Asset, error) {
	p, err := MarginalPrice(rs)
	if err != nil {
		return model.Asset{}, err
	}
	amount := calculator.CeilAmount(p, model.MaxAssetAmount)
	if amount < minPrice.Amount {
		amount = minPrice.Amount
	}
	return model.Asset{Amount: amount, Symbol: rs.TargetPrice.Symbol}, nil
}

// RentalFee prices renting amount units of rs: the marginal price per unit
// of weight integrated from the adjusted utilization to adjusted+amount,
// rounded up. Renting up to or past the weight fails.
func RentalFee(rs *model.ResourceState, amount int64) (model.Asset, error) {
	fee := model.Asset{Symbol: rs.TargetPrice.Symbol}
	if amount <= 0 {
		return fee, nil
	}
	if rs.Weight <= 0 ||
		rs.AdjustedUtilization+amount >= rs.Weight ||
		rs.Utilization+amount > rs.Weight {
		return fee, ErrInsufficientCapacity
	}
	w := float64(rs.Weight)
	x1 := float64(rs.AdjustedUtilization) / w
	x2 := float64(rs.AdjustedUtilization+amount) / w
	v := float64(rs.TargetPrice.Amount) * scarcity(rs) * calculator.SurchargeIntegral(x1, x2, rs.Exponent)
	fee.Amount = calculator.CeilAmount(v, model.MaxAssetAmount)
	return fee, nil
}

// Quote is the priced breakdown of a rent request.
type Quote struct {
	NetWeight int64
	CPUWeight int64
	NetFee    model.Asset
	CPUFee    model.Asset
	Fee       model.Asset
}

// price validates req against an already advanced state and prices it.
func price(s *model.MarketState, req model.RentRequest, env Env) (Quote, error) {
	var q Quote
	if req.Days != s.RentDays {
		return q, fmt.Errorf("%w: %d != %d", ErrRentDaysMismatch, req.Days, s.RentDays)
	}
	for _, r := range model.Resources {
		if f := req.Frac(r); f < 0 || f > calculator.Frac {
			return q, fmt.Errorf("%s: %w", r, ErrFracOutOfRange)
		}
	}
	if req.NetFrac == 0 && req.CPUFrac == 0 {
		return q, ErrNothingToRent
	}
	if req.MaxPayment.Symbol != env.CoreSymbol {
		return q, ErrPaymentSymbolMismatch
	}

	q.NetWeight = calculator.MulDiv(req.NetFrac, s.Net.Weight, calculator.Frac)
	q.CPUWeight = calculator.MulDiv(req.CPUFrac, s.CPU.Weight, calculator.Frac)

	var err error
	if q.NetFee, err = RentalFee(&s.Net, q.NetWeight); err != nil {
		return q, fmt.Errorf("%s: %w", model.ResourceNet, err)
	}
	if q.CPUFee, err = RentalFee(&s.CPU, q.CPUWeight); err != nil {
		return q, fmt.Errorf("%s: %w", model.ResourceCPU, err)
	}

	q.Fee = model.Asset{Amount: q.NetFee.Amount + q.CPUFee.Amount, Symbol: env.CoreSymbol}
	if q.Fee.Amount < s.MinRentPrice.Amount {
		q.Fee.Amount = s.MinRentPrice.Amount
	}
	if q.Fee.Amount > req.MaxPayment.Amount {
		return q, fmt.Errorf("%w: %s > %s", ErrFeeExceedsMax, q.Fee, req.MaxPayment)
	}
	return q, nil
}
