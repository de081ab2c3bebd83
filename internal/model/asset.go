package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxAssetAmount is the largest magnitude an asset amount may hold.
const MaxAssetAmount = int64(1)<<62 - 1

const maxPrecision = 18

// Symbol identifies a currency by code and decimal precision. Two symbols are
// equal only if both parts match.
type Symbol struct {
	Precision uint8
	Code      string
}

// ParseSymbol parses the "4,TST" notation.
func ParseSymbol(s string) (Symbol, error) {
	precStr, code, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Symbol{}, fmt.Errorf("symbol %q: expected <precision>,<code>", s)
	}
	prec, err := strconv.ParseUint(precStr, 10, 8)
	if err != nil {
		return Symbol{}, fmt.Errorf("symbol %q: precision: %w", s, err)
	}
	sym := Symbol{Precision: uint8(prec), Code: code}
	if err := sym.Validate(); err != nil {
		return Symbol{}, err
	}
	return sym, nil
}

// Validate checks the code is 1-7 upper case letters and the precision is sane.
func (s Symbol) Validate() error {
	if s.Precision > maxPrecision {
		return fmt.Errorf("symbol %s: precision %d exceeds %d", s.Code, s.Precision, maxPrecision)
	}
	if len(s.Code) == 0 || len(s.Code) > 7 {
		return fmt.Errorf("symbol code %q: must be 1-7 characters", s.Code)
	}
	for _, c := range s.Code {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("symbol code %q: only A-Z allowed", s.Code)
		}
	}
	return nil
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

func (s Symbol) MarshalYAML() (interface{}, error) { return s.String(), nil }

func (s *Symbol) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseSymbol(node.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Asset is a fixed-point amount of a symbol: Amount is in units of
// 10^-Precision.
type Asset struct {
	Amount int64
	Symbol Symbol
}

// ParseAsset parses the "1.0000 TST" notation. The number of fractional
// digits sets the precision, so "1.000 TST" and "1.0000 TST" carry
// different symbols.
func ParseAsset(s string) (Asset, error) {
	amountStr, code, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Asset{}, fmt.Errorf("asset %q: expected <amount> <code>", s)
	}
	var prec int
	if _, frac, dot := strings.Cut(amountStr, "."); dot {
		prec = len(frac)
	}
	if prec > maxPrecision {
		return Asset{}, fmt.Errorf("asset %q: too many decimals", s)
	}
	d, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Asset{}, fmt.Errorf("asset %q: amount: %w", s, err)
	}
	units := d.Shift(int32(prec))
	if units.Abs().GreaterThan(decimal.NewFromInt(MaxAssetAmount)) {
		return Asset{}, fmt.Errorf("asset %q: magnitude overflow", s)
	}
	sym := Symbol{Precision: uint8(prec), Code: strings.TrimSpace(code)}
	if err := sym.Validate(); err != nil {
		return Asset{}, fmt.Errorf("asset %q: %w", s, err)
	}
	return Asset{Amount: units.IntPart(), Symbol: sym}, nil
}

// MustParseAsset is ParseAsset for literals known to be valid.
func MustParseAsset(s string) Asset {
	a, err := ParseAsset(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Asset) String() string {
	d := decimal.New(a.Amount, -int32(a.Symbol.Precision))
	return d.StringFixed(int32(a.Symbol.Precision)) + " " + a.Symbol.Code
}

func (a Asset) MarshalJSON() ([]byte, error) {
	if a == (Asset{}) {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Asset{}
		return nil
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Asset) MarshalYAML() (interface{}, error) { return a.String(), nil }

func (a *Asset) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseAsset(node.Value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
