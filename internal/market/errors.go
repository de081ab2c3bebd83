package market

import (
	"errors"
	"fmt"

	"RentMarket/internal/model"
)

var (
	ErrNotInitialized       = errors.New("rentbw hasn't been initialized")
	ErrInsufficientCapacity = errors.New("market doesn't have enough resources available")
	ErrLedgerMismatch       = errors.New("outstanding orders don't add up to utilization")

	ErrRentDaysMismatch      = errors.New("days doesn't match configuration")
	ErrFracOutOfRange        = errors.New("frac must be in [0, 10^15]")
	ErrNothingToRent         = errors.New("nothing to rent")
	ErrPaymentSymbolMismatch = errors.New("max_payment doesn't match core symbol")
	ErrFeeExceedsMax         = errors.New("calculated fee exceeds max_payment")
)

// ConfigErrorKind identifies which configuration rule was violated.
type ConfigErrorKind int

const (
	RentDaysMustBePositive ConfigErrorKind = iota + 1
	MinPriceSymbolMismatch
	MinPriceNotPositive
	WeightRatioTooLarge
	WeightCannotGrow
	WeightRatioNegative
	StakeWeightTooSmall
	TargetTimestampNotInFuture
	ExponentTooSmall
	DecaySecsTooSmall
	PriceSymbolMismatch
	PriceNotPositive
)

// ConfigError is a rejected configure action. Resource is empty for
// market-wide fields.
type ConfigError struct {
	Kind     ConfigErrorKind
	Resource model.Resource
	Field    string
	Rule     string
}

func (e *ConfigError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s.%s: %s", e.Resource, e.Field, e.Rule)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

// Is matches on Kind. A target without a Resource matches any resource.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Resource == "" || t.Resource == e.Resource)
}

func (e *ConfigError) on(r model.Resource) *ConfigError {
	c := *e
	c.Resource = r
	return &c
}

var (
	ErrRentDaysMustBePositive     = &ConfigError{Kind: RentDaysMustBePositive, Field: "rent_days", Rule: "rent_days must be > 0"}
	ErrMinPriceSymbolMismatch     = &ConfigError{Kind: MinPriceSymbolMismatch, Field: "min_rent_price", Rule: "min_rent_price doesn't match core symbol"}
	ErrMinPriceNotPositive        = &ConfigError{Kind: MinPriceNotPositive, Field: "min_rent_price", Rule: "min_rent_price must be positive"}
	ErrWeightRatioTooLarge        = &ConfigError{Kind: WeightRatioTooLarge, Field: "current_weight_ratio", Rule: "current_weight_ratio is too large"}
	ErrWeightCannotGrow           = &ConfigError{Kind: WeightCannotGrow, Field: "target_weight_ratio", Rule: "weight can't grow over time"}
	ErrWeightRatioNegative        = &ConfigError{Kind: WeightRatioNegative, Field: "target_weight_ratio", Rule: "weight ratios can't be negative"}
	ErrStakeWeightTooSmall        = &ConfigError{Kind: StakeWeightTooSmall, Field: "assumed_stake_weight", Rule: "assumed_stake_weight must be at least 1; a much larger value is recommended"}
	ErrTargetTimestampNotInFuture = &ConfigError{Kind: TargetTimestampNotInFuture, Field: "target_timestamp", Rule: "target_timestamp must be in the future"}
	ErrExponentTooSmall           = &ConfigError{Kind: ExponentTooSmall, Field: "exponent", Rule: "exponent must be finite and >= 1"}
	ErrDecaySecsTooSmall          = &ConfigError{Kind: DecaySecsTooSmall, Field: "decay_secs", Rule: "decay_secs must be >= 1"}
	ErrPriceSymbolMismatch        = &ConfigError{Kind: PriceSymbolMismatch, Field: "target_price", Rule: "target_price doesn't match core symbol"}
	ErrPriceNotPositive           = &ConfigError{Kind: PriceNotPositive, Field: "target_price", Rule: "target_price must be positive"}
)
