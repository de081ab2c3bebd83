package recorder

import "RentMarket/internal/model"

// ResourceSnapshot is the per-resource part of a history row.
type ResourceSnapshot struct {
	Weight              int64
	WeightRatio         int64
	Utilization         int64
	AdjustedUtilization int64
}

// Snapshot captures both resources of a market state after an action.
type Snapshot struct {
	Net ResourceSnapshot
	CPU ResourceSnapshot
}

// SnapshotOf extracts the recorded columns from s.
func SnapshotOf(s *model.MarketState) Snapshot {
	pick := func(rs *model.ResourceState) ResourceSnapshot {
		return ResourceSnapshot{
			Weight:              rs.Weight,
			WeightRatio:         rs.WeightRatio,
			Utilization:         rs.Utilization,
			AdjustedUtilization: rs.AdjustedUtilization,
		}
	}
	return Snapshot{Net: pick(&s.Net), CPU: pick(&s.CPU)}
}

// ConfigureEvent records an accepted configuration.
type ConfigureEvent struct {
	Time     model.Timestamp
	Config   model.MarketConfig
	Snapshot Snapshot
}

// TickEvent records a maintenance pass.
type TickEvent struct {
	Time     model.Timestamp
	Caller   string
	Drained  int
	Snapshot Snapshot
}

// RentEvent records a committed rental.
type RentEvent struct {
	Time     model.Timestamp
	Payer    string
	Receipt  model.RentReceipt
	Snapshot Snapshot
}

// Recorder persists the market history for analysis.
type Recorder interface {
	RecordConfigure(evt *ConfigureEvent) error
	RecordTick(evt *TickEvent) error
	RecordRent(evt *RentEvent) error
	Close() error
}
