package model

// StateVersion is the schema tag written into every persisted MarketState.
const StateVersion uint8 = 0

// ResourceState is the runtime state of one resource class.
type ResourceState struct {
	Version              uint8     `json:"version"`
	Weight               int64     `json:"weight"`
	WeightRatio          int64     `json:"weight_ratio"`
	AssumedStakeWeight   int64     `json:"assumed_stake_weight"`
	InitialWeightRatio   int64     `json:"initial_weight_ratio"`
	TargetWeightRatio    int64     `json:"target_weight_ratio"`
	InitialTimestamp     Timestamp `json:"initial_timestamp"`
	TargetTimestamp      Timestamp `json:"target_timestamp"`
	Exponent             float64   `json:"exponent"`
	DecaySecs            uint32    `json:"decay_secs"`
	TargetPrice          Asset     `json:"target_price"`
	Utilization          int64     `json:"utilization"`
	AdjustedUtilization  int64     `json:"adjusted_utilization"`
	UtilizationTimestamp Timestamp `json:"utilization_timestamp"`
}

// MarketState is the singleton market record. It is a plain value: copying
// it yields an independent snapshot.
type MarketState struct {
	Version      uint8         `json:"version"`
	Net          ResourceState `json:"net"`
	CPU          ResourceState `json:"cpu"`
	RentDays     uint32        `json:"rent_days"`
	MinRentPrice Asset         `json:"min_rent_price"`
}

// Resource returns the state of r.
func (s *MarketState) Resource(r Resource) *ResourceState {
	if r == ResourceCPU {
		return &s.CPU
	}
	return &s.Net
}

// Config reports the configuration currently in effect. CurrentWeightRatio
// is the instantaneous ratio as of the last advance.
func (s *MarketState) Config() MarketConfig {
	return MarketConfig{
		Net:          s.Net.config(),
		CPU:          s.CPU.config(),
		RentDays:     s.RentDays,
		MinRentPrice: s.MinRentPrice,
	}
}

func (r *ResourceState) config() ResourceConfig {
	return ResourceConfig{
		CurrentWeightRatio: r.WeightRatio,
		TargetWeightRatio:  r.TargetWeightRatio,
		AssumedStakeWeight: r.AssumedStakeWeight,
		TargetTimestamp:    r.TargetTimestamp,
		Exponent:           r.Exponent,
		DecaySecs:          r.DecaySecs,
		TargetPrice:        r.TargetPrice,
	}
}
