package market

import (
	"testing"

	"github.com/stretchr/testify/require"

	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

const (
	day         = int64(model.SecondsPerDay)
	stakeWeight = int64(1_000_000_000_000)
	genesis     = model.Timestamp(1_600_000_000)
)

var coreSymbol = model.Symbol{Precision: 4, Code: "TST"}

// harness replays actions against a single market the way the host would:
// one state value threaded through every call and a clock that only moves
// forward.
type harness struct {
	t      *testing.T
	state  *model.MarketState
	ledger *MemLedger
	now    model.Timestamp
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, ledger: NewMemLedger(), now: genesis}
}

func (h *harness) env() Env {
	return Env{Now: h.now, CoreSymbol: coreSymbol}
}

func (h *harness) advance(secs int64) {
	h.now = h.now.Add(secs)
}

func (h *harness) configure(u model.ConfigUpdate) error {
	next, err := Configure(h.state, u, h.env())
	if err != nil {
		return err
	}
	h.state = &next
	return nil
}

func (h *harness) tick(maxBatch uint16) TickResult {
	next, res, err := Tick(h.state, h.ledger, "alice", maxBatch, h.env())
	require.NoError(h.t, err)
	h.state = &next
	return res
}

func (h *harness) rent(req model.RentRequest) (model.RentReceipt, error) {
	next, receipt, err := Rent(h.state, h.ledger, req, h.env())
	if err != nil {
		return receipt, err
	}
	h.state = &next
	return receipt, nil
}

func (h *harness) defaultConfig(edit func(c *model.MarketConfig)) model.ConfigUpdate {
	c := model.MarketConfig{
		Net: model.ResourceConfig{
			CurrentWeightRatio: calculator.Frac,
			TargetWeightRatio:  calculator.Frac / 100,
			AssumedStakeWeight: stakeWeight,
			TargetTimestamp:    h.now.Add(100 * day),
			Exponent:           2,
			DecaySecs:          uint32(day),
			TargetPrice:        model.MustParseAsset("1000000.0000 TST"),
		},
		RentDays:     30,
		MinRentPrice: model.MustParseAsset("1.0000 TST"),
	}
	c.CPU = c.Net
	if edit != nil {
		edit(&c)
	}
	return c.Update()
}

func requireNear(t *testing.T, want, got int64) {
	t.Helper()
	require.InDelta(t, float64(want), float64(got), 1, "want %d, got %d", want, got)
}
