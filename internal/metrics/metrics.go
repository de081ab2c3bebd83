package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"RentMarket/internal/model"
)

const namespace = "rentbw"

// Metrics exposes the market state to Prometheus. Gauges are labelled by
// resource ("net" or "cpu").
type Metrics struct {
	registry *prometheus.Registry

	weight              *prometheus.GaugeVec
	weightRatio         *prometheus.GaugeVec
	utilization         *prometheus.GaugeVec
	adjustedUtilization *prometheus.GaugeVec
	price               *prometheus.GaugeVec

	ticks   prometheus.Counter
	rentals prometheus.Counter
	drained prometheus.Counter
	fees    prometheus.Counter
}

func New() *Metrics {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: name, Help: help,
		}, []string{"resource"})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: name, Help: help,
		})
	}
	m := &Metrics{
		registry:            prometheus.NewRegistry(),
		weight:              gauge("weight", "Current rentable weight."),
		weightRatio:         gauge("weight_ratio", "Current weight ratio in units of 10^-15."),
		utilization:         gauge("utilization", "Weight held by outstanding rentals."),
		adjustedUtilization: gauge("adjusted_utilization", "Smoothed utilization used for pricing."),
		price:               gauge("marginal_price", "Instantaneous price of the next unit of weight, in settlement units."),
		ticks:               counter("ticks_total", "Committed maintenance passes."),
		rentals:             counter("rentals_total", "Committed rentals."),
		drained:             counter("drained_orders_total", "Matured orders released."),
		fees:                counter("fees_units_total", "Rental fees collected, in settlement units."),
	}
	m.registry.MustRegister(
		m.weight, m.weightRatio, m.utilization, m.adjustedUtilization, m.price,
		m.ticks, m.rentals, m.drained, m.fees,
	)
	return m
}

// Observe publishes s. prices holds the marginal price per resource; a
// resource missing from it keeps its previous price.
func (m *Metrics) Observe(s *model.MarketState, prices map[model.Resource]float64) {
	for _, r := range model.Resources {
		rs := s.Resource(r)
		label := string(r)
		m.weight.WithLabelValues(label).Set(float64(rs.Weight))
		m.weightRatio.WithLabelValues(label).Set(float64(rs.WeightRatio))
		m.utilization.WithLabelValues(label).Set(float64(rs.Utilization))
		m.adjustedUtilization.WithLabelValues(label).Set(float64(rs.AdjustedUtilization))
		if p, ok := prices[r]; ok {
			m.price.WithLabelValues(label).Set(p)
		}
	}
}

func (m *Metrics) Tick(drained int) {
	m.ticks.Inc()
	m.drained.Add(float64(drained))
}

func (m *Metrics) Rent(fee model.Asset, drained int) {
	m.rentals.Inc()
	m.fees.Add(float64(fee.Amount))
	m.drained.Add(float64(drained))
}

// Registry returns the registry holding every market collector.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
