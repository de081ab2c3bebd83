package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"RentMarket/internal/model"
)

// OrderBook is the rental order table. Keys are the big-endian expiry
// followed by the big-endian id, so a cursor walks orders oldest maturity
// first.
type OrderBook struct {
	b *bbolt.Bucket
}

func orderKey(expires model.Timestamp, id uint64) []byte {
	k := make([]byte, 16)
	// flip the sign bit so negative timestamps still sort first
	binary.BigEndian.PutUint64(k[:8], uint64(expires)^(1<<63))
	binary.BigEndian.PutUint64(k[8:], id)
	return k
}

func decodeOrder(v []byte) (model.RentalOrder, error) {
	var o model.RentalOrder
	if err := json.Unmarshal(v, &o); err != nil {
		return o, fmt.Errorf("decode order: %w", err)
	}
	return o, nil
}

// Matured returns up to max orders that expired at or before now.
func (ob *OrderBook) Matured(now model.Timestamp, max uint16) ([]model.RentalOrder, error) {
	var out []model.RentalOrder
	c := ob.b.Cursor()
	for k, v := c.First(); k != nil && len(out) < int(max); k, v = c.Next() {
		o, err := decodeOrder(v)
		if err != nil {
			return nil, err
		}
		if !o.Matured(now) {
			break
		}
		out = append(out, o)
	}
	return out, nil
}

func (ob *OrderBook) Erase(o model.RentalOrder) error {
	return ob.b.Delete(orderKey(o.Expires, o.ID))
}

// Record assigns the next id from the bucket sequence and stores the order.
func (ob *OrderBook) Record(o model.RentalOrder) (model.RentalOrder, error) {
	id, err := ob.b.NextSequence()
	if err != nil {
		return o, fmt.Errorf("next order id: %w", err)
	}
	o.ID = id
	data, err := json.Marshal(o)
	if err != nil {
		return o, fmt.Errorf("encode order: %w", err)
	}
	if err := ob.b.Put(orderKey(o.Expires, o.ID), data); err != nil {
		return o, err
	}
	return o, nil
}

func (ob *OrderBook) Utilization(r model.Resource) (int64, error) {
	var sum int64
	err := ob.b.ForEach(func(_, v []byte) error {
		o, err := decodeOrder(v)
		if err != nil {
			return err
		}
		sum += o.Weight(r)
		return nil
	})
	return sum, err
}

// List returns up to limit orders in maturity order. A limit of 0 lists all.
func (ob *OrderBook) List(limit int) ([]model.RentalOrder, error) {
	var out []model.RentalOrder
	c := ob.b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if limit > 0 && len(out) >= limit {
			break
		}
		o, err := decodeOrder(v)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// Len counts outstanding orders.
func (ob *OrderBook) Len() int {
	n := 0
	c := ob.b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}
