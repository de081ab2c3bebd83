package market

import (
	"math"

	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

// Configure validates update against prev and returns the new state. prev is
// nil when the market does not exist yet. On error nothing is returned and
// prev is untouched.
//
// Omitted fields keep their current value. For an existing market the
// already-advanced weight ratio becomes the new initial ratio at env.Now, so
// the curve is continuous across reconfiguration; a supplied
// current_weight_ratio only seeds a new market.
func Configure(prev *model.MarketState, update model.ConfigUpdate, env Env) (model.MarketState, error) {
	var next model.MarketState
	if prev != nil {
		next = Advance(*prev, env)
	}
	next.Version = model.StateVersion

	if update.RentDays != nil {
		next.RentDays = *update.RentDays
	}
	if update.MinRentPrice != nil {
		next.MinRentPrice = *update.MinRentPrice
	}
	if next.RentDays == 0 {
		return model.MarketState{}, ErrRentDaysMustBePositive
	}
	if next.MinRentPrice.Symbol != env.CoreSymbol {
		return model.MarketState{}, ErrMinPriceSymbolMismatch
	}
	if next.MinRentPrice.Amount <= 0 {
		return model.MarketState{}, ErrMinPriceNotPositive
	}

	for _, r := range model.Resources {
		if err := configureResource(next.Resource(r), update.Resource(r), prev != nil, env); err != nil {
			return model.MarketState{}, err.on(r)
		}
	}
	return next, nil
}

func configureResource(rs *model.ResourceState, u *model.ResourceUpdate, exists bool, env Env) *ConfigError {
	initial := rs.WeightRatio
	if u.CurrentWeightRatio != nil {
		if *u.CurrentWeightRatio > calculator.Frac {
			return ErrWeightRatioTooLarge
		}
		if !exists {
			initial = *u.CurrentWeightRatio
		}
	}
	target := rs.TargetWeightRatio
	if u.TargetWeightRatio != nil {
		target = *u.TargetWeightRatio
	}
	if target > initial {
		return ErrWeightCannotGrow
	}
	if target < 0 {
		return ErrWeightRatioNegative
	}

	next := *rs
	if u.AssumedStakeWeight != nil {
		next.AssumedStakeWeight = *u.AssumedStakeWeight
	}
	if u.TargetTimestamp != nil {
		next.TargetTimestamp = *u.TargetTimestamp
	}
	if u.Exponent != nil {
		next.Exponent = *u.Exponent
	}
	if u.DecaySecs != nil {
		next.DecaySecs = *u.DecaySecs
	}
	if u.TargetPrice != nil {
		next.TargetPrice = *u.TargetPrice
	}

	if next.AssumedStakeWeight < 1 {
		return ErrStakeWeightTooSmall
	}
	if next.TargetTimestamp <= env.Now {
		return ErrTargetTimestampNotInFuture
	}
	// Written so that NaN fails as well. +Inf has no JSON encoding.
	if !(next.Exponent >= 1) || math.IsInf(next.Exponent, 0) {
		return ErrExponentTooSmall
	}
	if next.DecaySecs < 1 {
		return ErrDecaySecsTooSmall
	}
	if next.TargetPrice.Symbol != env.CoreSymbol {
		return ErrPriceSymbolMismatch
	}
	if next.TargetPrice.Amount <= 0 {
		return ErrPriceNotPositive
	}

	next.Version = model.StateVersion
	next.InitialWeightRatio = initial
	next.TargetWeightRatio = target
	next.InitialTimestamp = env.Now
	if !exists {
		next.UtilizationTimestamp = env.Now
	}
	advanceWeight(&next, env)
	*rs = next
	return nil
}
