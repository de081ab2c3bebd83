package market

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

func TestTickIsIdempotentAtFixedTime(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))
	_, err := h.rent(rentRequest(calculator.Frac/100, calculator.Frac/50))
	require.NoError(t, err)

	h.advance(3*day + 17)
	h.tick(10)
	first := *h.state
	h.tick(10)
	assert.Equal(t, first, *h.state)
}

func TestTickDoesNotModifyInput(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))
	before := *h.state

	h.advance(day)
	_, _, err := Tick(h.state, h.ledger, "bob", 10, h.env())
	require.NoError(t, err)
	assert.Equal(t, before, *h.state)
}

func TestTickRejectsLedgerMismatch(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))
	_, err := h.rent(rentRequest(calculator.Frac/1000, 0))
	require.NoError(t, err)

	_, err = h.ledger.Record(model.RentalOrder{Owner: "mallory", NetWeight: 5, Expires: h.now.Add(day)})
	require.NoError(t, err)
	before := *h.state

	h.advance(60)
	_, _, err = Tick(h.state, h.ledger, "bob", 10, h.env())
	require.ErrorIs(t, err, ErrLedgerMismatch)
	assert.Contains(t, err.Error(), "net")
	assert.Equal(t, before, *h.state)
}

func TestTickDrainsFIFOByMaturity(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))

	var ids []uint64
	for i := 0; i < 3; i++ {
		receipt, err := h.rent(rentRequest(calculator.Frac/1000, 0))
		require.NoError(t, err)
		ids = append(ids, receipt.Order.ID)
		h.advance(60)
	}
	rented := h.state.Net.Utilization
	require.Positive(t, rented)

	h.advance(30 * day)
	res := h.tick(2)
	require.Len(t, res.Drained, 2)
	assert.Equal(t, ids[0], res.Drained[0].ID)
	assert.Equal(t, ids[1], res.Drained[1].ID)

	remaining, err := h.ledger.Utilization(model.ResourceNet)
	require.NoError(t, err)
	assert.Equal(t, remaining, h.state.Net.Utilization)

	res = h.tick(2)
	require.Len(t, res.Drained, 1)
	assert.Equal(t, ids[2], res.Drained[0].ID)
	assert.Zero(t, h.state.Net.Utilization)

	res = h.tick(2)
	assert.Empty(t, res.Drained)
	assert.Zero(t, h.state.Net.Utilization)
}

func TestTickZeroBatchOnlyAdvances(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))
	_, err := h.rent(rentRequest(calculator.Frac/100, 0))
	require.NoError(t, err)

	h.advance(31 * day)
	res := h.tick(0)
	assert.Empty(t, res.Drained)
	assert.Len(t, h.ledger.Orders(), 1)
	assert.Equal(t, h.now, h.state.Net.UtilizationTimestamp)
}

func TestAdjustedUtilizationDecays(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))
	_, err := h.rent(rentRequest(calculator.Frac/100, 0))
	require.NoError(t, err)
	rented := h.state.Net.Utilization

	h.advance(30 * day)
	h.tick(10)
	require.Zero(t, h.state.Net.Utilization)
	require.Equal(t, rented, h.state.Net.AdjustedUtilization)

	h.advance(day)
	h.tick(10)
	want := int64(float64(rented) * math.Exp(-1))
	assert.Equal(t, want, h.state.Net.AdjustedUtilization)

	peek := AdjustedUtilization(*h.state.Resource(model.ResourceNet), h.now.Add(100*day))
	assert.Zero(t, peek)
}

func TestMarketStateRoundTrip(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(func(c *model.MarketConfig) {
		c.Net.Exponent = 2.718281828459045
	})))
	_, err := h.rent(rentRequest(calculator.Frac/7, calculator.Frac/9))
	require.NoError(t, err)

	data, err := json.Marshal(h.state)
	require.NoError(t, err)
	var decoded model.MarketState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *h.state, decoded)
}
