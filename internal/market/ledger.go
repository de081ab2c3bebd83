package market

import (
	"sort"

	"RentMarket/internal/model"
)

// Ledger is the table of outstanding rental orders. Implementations must
// return matured orders oldest-maturity first (ties by id) so that draining
// is FIFO.
type Ledger interface {
	// Matured returns up to max orders with Expires <= now without removing them.
	Matured(now model.Timestamp, max uint16) ([]model.RentalOrder, error)
	// Erase removes a drained order.
	Erase(order model.RentalOrder) error
	// Record stores a new order and returns it with its assigned id.
	Record(order model.RentalOrder) (model.RentalOrder, error)
	// Utilization sums the outstanding weight of r over all orders.
	Utilization(r model.Resource) (int64, error)
}

// MemLedger is an in-memory Ledger.
type MemLedger struct {
	orders []model.RentalOrder
	lastID uint64
}

func NewMemLedger() *MemLedger {
	return &MemLedger{}
}

func (l *MemLedger) Matured(now model.Timestamp, max uint16) ([]model.RentalOrder, error) {
	var out []model.RentalOrder
	for _, o := range l.orders {
		if len(out) >= int(max) || !o.Matured(now) {
			break
		}
		out = append(out, o)
	}
	return out, nil
}

func (l *MemLedger) Erase(order model.RentalOrder) error {
	for i, o := range l.orders {
		if o.ID == order.ID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (l *MemLedger) Record(order model.RentalOrder) (model.RentalOrder, error) {
	l.lastID++
	order.ID = l.lastID
	i := sort.Search(len(l.orders), func(i int) bool {
		o := l.orders[i]
		return o.Expires > order.Expires || (o.Expires == order.Expires && o.ID > order.ID)
	})
	l.orders = append(l.orders, model.RentalOrder{})
	copy(l.orders[i+1:], l.orders[i:])
	l.orders[i] = order
	return order, nil
}

func (l *MemLedger) Utilization(r model.Resource) (int64, error) {
	var sum int64
	for _, o := range l.orders {
		sum += o.Weight(r)
	}
	return sum, nil
}

// Orders returns a copy of the outstanding orders in maturity order.
func (l *MemLedger) Orders() []model.RentalOrder {
	return append([]model.RentalOrder(nil), l.orders...)
}
