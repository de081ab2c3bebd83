package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RentMarket/internal/calculator"
	"RentMarket/internal/model"
)

func TestWeightRatioEndpointsAndMonotonicity(t *testing.T) {
	rs := &model.ResourceState{
		InitialWeightRatio: calculator.Frac,
		TargetWeightRatio:  calculator.Frac / 100,
		InitialTimestamp:   genesis,
		TargetTimestamp:    genesis.Add(7 * day),
	}
	assert.Equal(t, rs.InitialWeightRatio, WeightRatio(rs, genesis-1))
	assert.Equal(t, rs.InitialWeightRatio, WeightRatio(rs, genesis))
	assert.Equal(t, rs.TargetWeightRatio, WeightRatio(rs, rs.TargetTimestamp))
	assert.Equal(t, rs.TargetWeightRatio, WeightRatio(rs, rs.TargetTimestamp.Add(365*day)))

	prev := WeightRatio(rs, genesis)
	for ts := genesis; ts <= rs.TargetTimestamp; ts = ts.Add(3607) {
		got := WeightRatio(rs, ts)
		require.LessOrEqual(t, got, prev, "ratio grew at %s", ts)
		require.GreaterOrEqual(t, got, rs.TargetWeightRatio)
		prev = got
	}
}

func TestWeightFollowsReference(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(func(c *model.MarketConfig) {
		c.Net.CurrentWeightRatio = calculator.Frac / 10
	})))
	assert.Equal(t, stakeWeight/10, h.state.Net.Weight, "falls back to assumed stake")

	next := Advance(*h.state, Env{Now: h.now, TotalWeight: 5_000, CoreSymbol: coreSymbol})
	assert.Equal(t, int64(500), next.Net.Weight)
	assert.Equal(t, int64(5_000), next.CPU.Weight)
}

// Day-by-day walk through a transition: plain ticks, an empty
// reconfiguration, extending the transition, moving the target, then
// pinning the target.
func TestWeightTransitionSchedule(t *testing.T) {
	h := newHarness(t)

	netStart := calculator.Frac * 11 / 100
	netTarget := calculator.Frac * 1 / 100
	cpuStart := calculator.Frac * 11 / 1000
	cpuTarget := calculator.Frac * 1 / 1000

	require.NoError(t, h.configure(h.defaultConfig(func(c *model.MarketConfig) {
		c.Net.CurrentWeightRatio = netStart
		c.Net.TargetWeightRatio = netTarget
		c.Net.TargetTimestamp = h.now.Add(10 * day)
		c.CPU.CurrentWeightRatio = cpuStart
		c.CPU.TargetWeightRatio = cpuTarget
		c.CPU.TargetTimestamp = h.now.Add(20 * day)
	})))

	var net, cpu int64
	for i := int64(0); i <= 6; i++ {
		switch {
		case i == 2:
			h.advance(day)
			require.NoError(t, h.configure(model.ConfigUpdate{}))
		case i > 0:
			h.advance(day)
			h.tick(10)
		}
		net = netStart + i*(netTarget-netStart)/10
		cpu = cpuStart + i*(cpuTarget-cpuStart)/20
		requireNear(t, net, h.state.Net.WeightRatio)
		requireNear(t, cpu, h.state.CPU.WeightRatio)
	}

	// Extend transition time.
	{
		i := int64(7)
		h.advance(day)
		require.NoError(t, h.configure(model.ConfigUpdate{
			Net: model.ResourceUpdate{TargetTimestamp: model.Ptr(h.now.Add(30 * day))},
			CPU: model.ResourceUpdate{TargetTimestamp: model.Ptr(h.now.Add(40 * day))},
		}))
		netStart = netStart + i*(netTarget-netStart)/10
		cpuStart = cpuStart + i*(cpuTarget-cpuStart)/20
		requireNear(t, netStart, h.state.Net.WeightRatio)
		requireNear(t, cpuStart, h.state.CPU.WeightRatio)
	}

	for i := int64(0); i <= 5; i++ {
		if i > 0 {
			h.advance(day)
			h.tick(10)
		}
		net = netStart + i*(netTarget-netStart)/30
		cpu = cpuStart + i*(cpuTarget-cpuStart)/40
		requireNear(t, net, h.state.Net.WeightRatio)
		requireNear(t, cpu, h.state.CPU.WeightRatio)
	}

	// Change target, keep existing transition time.
	{
		i := int64(6)
		h.advance(day)
		newNetTarget := netTarget / 10
		newCPUTarget := cpuTarget / 20
		require.NoError(t, h.configure(model.ConfigUpdate{
			Net: model.ResourceUpdate{TargetWeightRatio: model.Ptr(newNetTarget)},
			CPU: model.ResourceUpdate{TargetWeightRatio: model.Ptr(newCPUTarget)},
		}))
		netStart = netStart + i*(netTarget-netStart)/30
		cpuStart = cpuStart + i*(cpuTarget-cpuStart)/40
		netTarget, cpuTarget = newNetTarget, newCPUTarget
		requireNear(t, netStart, h.state.Net.WeightRatio)
		requireNear(t, cpuStart, h.state.CPU.WeightRatio)
	}

	for i := int64(0); i <= 10; i++ {
		if i > 0 {
			h.advance(day)
			h.tick(10)
		}
		net = netStart + i*(netTarget-netStart)/(30-6)
		cpu = cpuStart + i*(cpuTarget-cpuStart)/(40-6)
		requireNear(t, net, h.state.Net.WeightRatio)
		requireNear(t, cpu, h.state.CPU.WeightRatio)
	}

	// Move transition time to the immediate future.
	h.advance(day)
	require.NoError(t, h.configure(model.ConfigUpdate{
		Net: model.ResourceUpdate{TargetTimestamp: model.Ptr(h.now.Add(1))},
		CPU: model.ResourceUpdate{TargetTimestamp: model.Ptr(h.now.Add(1))},
	}))
	h.advance(1)

	// Targets hold as time advances.
	for i := 0; i <= 10; i++ {
		h.tick(10)
		assert.Equal(t, netTarget, h.state.Net.WeightRatio)
		assert.Equal(t, cpuTarget, h.state.CPU.WeightRatio)
		h.advance(day)
	}
}

func TestReconfigureTargetOnlyIsContinuous(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.configure(h.defaultConfig(nil)))
	h.advance(7*day + 1234)

	before := Advance(*h.state, h.env())
	require.NoError(t, h.configure(model.ConfigUpdate{
		Net: model.ResourceUpdate{TargetTimestamp: model.Ptr(h.now.Add(30 * day))},
		CPU: model.ResourceUpdate{TargetWeightRatio: model.Ptr(calculator.Frac / 1000)},
	}))
	assert.Equal(t, before.Net.WeightRatio, h.state.Net.WeightRatio)
	assert.Equal(t, before.CPU.WeightRatio, h.state.CPU.WeightRatio)
	assert.Equal(t, before.Net.Weight, h.state.Net.Weight)
}
