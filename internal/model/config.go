package model

// Resource names one of the two rentable resource classes.
type Resource string

const (
	ResourceNet Resource = "net"
	ResourceCPU Resource = "cpu"
)

// Resources lists the resource classes in their fixed processing order.
var Resources = []Resource{ResourceNet, ResourceCPU}

// ResourceConfig is the configuration of one resource class.
type ResourceConfig struct {
	CurrentWeightRatio int64     `json:"current_weight_ratio" yaml:"current_weight_ratio"`
	TargetWeightRatio  int64     `json:"target_weight_ratio" yaml:"target_weight_ratio"`
	AssumedStakeWeight int64     `json:"assumed_stake_weight" yaml:"assumed_stake_weight"`
	TargetTimestamp    Timestamp `json:"target_timestamp" yaml:"target_timestamp"`
	Exponent           float64   `json:"exponent" yaml:"exponent"`
	DecaySecs          uint32    `json:"decay_secs" yaml:"decay_secs"`
	TargetPrice        Asset     `json:"target_price" yaml:"target_price"`
}

// MarketConfig is a complete market configuration.
type MarketConfig struct {
	Net          ResourceConfig `json:"net" yaml:"net"`
	CPU          ResourceConfig `json:"cpu" yaml:"cpu"`
	RentDays     uint32         `json:"rent_days" yaml:"rent_days"`
	MinRentPrice Asset          `json:"min_rent_price" yaml:"min_rent_price"`
}

// ResourceUpdate is a partial ResourceConfig. A nil field leaves the
// current value in place.
type ResourceUpdate struct {
	CurrentWeightRatio *int64     `json:"current_weight_ratio,omitempty" yaml:"current_weight_ratio,omitempty"`
	TargetWeightRatio  *int64     `json:"target_weight_ratio,omitempty" yaml:"target_weight_ratio,omitempty"`
	AssumedStakeWeight *int64     `json:"assumed_stake_weight,omitempty" yaml:"assumed_stake_weight,omitempty"`
	TargetTimestamp    *Timestamp `json:"target_timestamp,omitempty" yaml:"target_timestamp,omitempty"`
	Exponent           *float64   `json:"exponent,omitempty" yaml:"exponent,omitempty"`
	DecaySecs          *uint32    `json:"decay_secs,omitempty" yaml:"decay_secs,omitempty"`
	TargetPrice        *Asset     `json:"target_price,omitempty" yaml:"target_price,omitempty"`
}

// ConfigUpdate is the argument of the configure action. An empty update
// re-anchors the curves at the current time and changes nothing else.
type ConfigUpdate struct {
	Net          ResourceUpdate `json:"net" yaml:"net"`
	CPU          ResourceUpdate `json:"cpu" yaml:"cpu"`
	RentDays     *uint32        `json:"rent_days,omitempty" yaml:"rent_days,omitempty"`
	MinRentPrice *Asset         `json:"min_rent_price,omitempty" yaml:"min_rent_price,omitempty"`
}

// Resource returns the update for r.
func (u *ConfigUpdate) Resource(r Resource) *ResourceUpdate {
	if r == ResourceCPU {
		return &u.CPU
	}
	return &u.Net
}

// Update converts c into an update that sets every field.
func (c MarketConfig) Update() ConfigUpdate {
	return ConfigUpdate{
		Net:          c.Net.update(),
		CPU:          c.CPU.update(),
		RentDays:     Ptr(c.RentDays),
		MinRentPrice: Ptr(c.MinRentPrice),
	}
}

func (c ResourceConfig) update() ResourceUpdate {
	return ResourceUpdate{
		CurrentWeightRatio: Ptr(c.CurrentWeightRatio),
		TargetWeightRatio:  Ptr(c.TargetWeightRatio),
		AssumedStakeWeight: Ptr(c.AssumedStakeWeight),
		TargetTimestamp:    Ptr(c.TargetTimestamp),
		Exponent:           Ptr(c.Exponent),
		DecaySecs:          Ptr(c.DecaySecs),
		TargetPrice:        Ptr(c.TargetPrice),
	}
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
