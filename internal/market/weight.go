package market

import (
	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

// Env carries the host-supplied inputs of one action.
type Env struct {
	Now model.Timestamp
	// TotalWeight is the network-wide stake reference. Zero or negative
	// falls back to each resource's assumed_stake_weight.
	TotalWeight int64
	// CoreSymbol is the settlement currency.
	CoreSymbol model.Symbol
}

// WeightRatio evaluates the weight curve of rs at now: linear from the
// initial ratio at the initial timestamp to the target ratio at the target
// timestamp, constant outside that span.
func WeightRatio(rs *model.ResourceState, now model.Timestamp) int64 {
	return calculator.Interpolate(
		rs.InitialWeightRatio, rs.TargetWeightRatio,
		int64(rs.InitialTimestamp), int64(rs.TargetTimestamp), int64(now),
	)
}

// Weight converts a ratio into absolute capacity against the reference weight.
func Weight(ratio, reference int64) int64 {
	return calculator.MulDiv(reference, ratio, calculator.Frac)
}

func referenceWeight(rs *model.ResourceState, total int64) int64 {
	if total > 0 {
		return total
	}
	return rs.AssumedStakeWeight
}

func advanceWeight(rs *model.ResourceState, env Env) {
	rs.WeightRatio = WeightRatio(rs, env.Now)
	rs.Weight = Weight(rs.WeightRatio, referenceWeight(rs, env.TotalWeight))
}

// Advance brings both resources of s forward to env.Now. It is pure: the
// argument is not modified and the same inputs always give the same result.
func Advance(s model.MarketState, env Env) model.MarketState {
	for _, r := range model.Resources {
		rs := s.Resource(r)
		advanceWeight(rs, env)
		advanceUtilization(rs, env.Now)
	}
	return s
}
