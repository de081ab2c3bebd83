package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"RentMarket/internal/market"
	"RentMarket/internal/model"
)

// percent renders a Frac-scaled ratio as a percentage.
func percent(ratio int64) string {
	return decimal.New(ratio, -15).Shift(2).StringFixed(4) + "%"
}

func share(part, whole int64) string {
	if whole <= 0 {
		return "n/a"
	}
	return decimal.NewFromInt(part).Div(decimal.NewFromInt(whole)).Shift(2).StringFixed(2) + "%"
}

// FormatState renders the market state. prices may be nil or partial.
func FormatState(s *model.MarketState, prices map[model.Resource]model.Asset) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("rent_days: %d | min_rent_price: %s\n", s.RentDays, s.MinRentPrice))
	for _, r := range model.Resources {
		rs := s.Resource(r)
		b.WriteString(fmt.Sprintf("\n[%s]\n", r))
		b.WriteString(fmt.Sprintf("  weight:       %d (ratio %s)\n", rs.Weight, percent(rs.WeightRatio)))
		b.WriteString(fmt.Sprintf("  schedule:     %s @ %s -> %s @ %s\n",
			percent(rs.InitialWeightRatio), rs.InitialTimestamp, percent(rs.TargetWeightRatio), rs.TargetTimestamp))
		b.WriteString(fmt.Sprintf("  utilization:  %d (%s), adjusted %d\n",
			rs.Utilization, share(rs.Utilization, rs.Weight), rs.AdjustedUtilization))
		b.WriteString(fmt.Sprintf("  curve:        exponent %g, decay %ds, target price %s\n",
			rs.Exponent, rs.DecaySecs, rs.TargetPrice))
		if p, ok := prices[r]; ok {
			b.WriteString(fmt.Sprintf("  price now:    %s\n", p))
		}
	}
	return b.String()
}

// FormatOrders renders outstanding orders, one per line.
func FormatOrders(orders []model.RentalOrder, now model.Timestamp) string {
	if len(orders) == 0 {
		return "no outstanding orders\n"
	}
	var b strings.Builder
	for _, o := range orders {
		state := "active"
		if o.Matured(now) {
			state = "matured"
		}
		b.WriteString(fmt.Sprintf("#%d %s net=%d cpu=%d expires %s (%s)\n",
			o.ID, o.Owner, o.NetWeight, o.CPUWeight, o.Expires, state))
	}
	return b.String()
}

// FormatQuote renders the fee breakdown of a rent request.
func FormatQuote(q market.Quote) string {
	return fmt.Sprintf("net %d for %s, cpu %d for %s, total %s\n",
		q.NetWeight, q.NetFee, q.CPUWeight, q.CPUFee, q.Fee)
}

// FormatReceipt renders a committed rental.
func FormatReceipt(r model.RentReceipt) string {
	return fmt.Sprintf("order #%d for %s: net %d, cpu %d, paid %s, expires %s\n",
		r.Order.ID, r.Order.Owner, r.Order.NetWeight, r.Order.CPUWeight, r.Fee, r.Order.Expires)
}
