package market

import (
	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

// AdjustedUtilization returns the smoothed utilization of rs at now without
// modifying rs.
func AdjustedUtilization(rs model.ResourceState, now model.Timestamp) int64 {
	advanceUtilization(&rs, now)
	return rs.AdjustedUtilization
}

// advanceUtilization moves the smoothed value toward the raw one. A raw value
// at or above the smoothed one is taken immediately; a lower raw value is
// approached by exponential decay of the gap with time constant decay_secs.
func advanceUtilization(rs *model.ResourceState, now model.Timestamp) {
	if now <= rs.UtilizationTimestamp {
		return
	}
	if rs.Utilization >= rs.AdjustedUtilization {
		rs.AdjustedUtilization = rs.Utilization
	} else {
		gap := rs.AdjustedUtilization - rs.Utilization
		elapsed := int64(now - rs.UtilizationTimestamp)
		rs.AdjustedUtilization = rs.Utilization + calculator.DecayGap(gap, elapsed, rs.DecaySecs)
	}
	rs.UtilizationTimestamp = now
}

// release returns matured capacity. Utilization never drops below zero.
func release(rs *model.ResourceState, amount int64) {
	rs.Utilization = max(rs.Utilization-amount, 0)
}

// reserve adds newly rented capacity to both the raw and smoothed values.
func reserve(rs *model.ResourceState, amount int64) {
	rs.Utilization += amount
	rs.AdjustedUtilization += amount
}
