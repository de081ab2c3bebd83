package model

// RentalOrder is an outstanding rental. It is immutable once recorded and
// removed from the ledger when it matures and is drained.
type RentalOrder struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner"`
	NetWeight int64     `json:"net_weight"`
	CPUWeight int64     `json:"cpu_weight"`
	NetFrac   int64     `json:"net_frac"`
	CPUFrac   int64     `json:"cpu_frac"`
	Expires   Timestamp `json:"expires"`
}

// Weight returns the amount of r held by the order.
func (o RentalOrder) Weight(r Resource) int64 {
	if r == ResourceCPU {
		return o.CPUWeight
	}
	return o.NetWeight
}

// Matured reports whether the order has expired at now.
func (o RentalOrder) Matured(now Timestamp) bool {
	return o.Expires <= now
}

// RentRequest is the argument of the rent action. Fracs are fractions of the
// current weight in units of 10^-15.
type RentRequest struct {
	Payer      string `json:"payer" yaml:"payer"`
	Receiver   string `json:"receiver" yaml:"receiver"`
	Days       uint32 `json:"days" yaml:"days"`
	NetFrac    int64  `json:"net_frac" yaml:"net_frac"`
	CPUFrac    int64  `json:"cpu_frac" yaml:"cpu_frac"`
	MaxPayment Asset  `json:"max_payment" yaml:"max_payment"`
}

// Frac returns the requested fraction of r.
func (r RentRequest) Frac(res Resource) int64 {
	if res == ResourceCPU {
		return r.CPUFrac
	}
	return r.NetFrac
}

// RentReceipt describes a committed rental.
type RentReceipt struct {
	Order  RentalOrder `json:"order"`
	Fee    Asset       `json:"fee"`
	NetFee Asset       `json:"net_fee"`
	CPUFee Asset       `json:"cpu_fee"`
}
