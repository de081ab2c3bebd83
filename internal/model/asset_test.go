package model

import (
	"encoding/json"
	"testing"
)

func TestParseAsset(t *testing.T) {
	tests := []struct {
		in   string
		want Asset
	}{
		{"1.0000 TST", Asset{Amount: 10000, Symbol: Symbol{Precision: 4, Code: "TST"}}},
		{"-0.0001 TST", Asset{Amount: -1, Symbol: Symbol{Precision: 4, Code: "TST"}}},
		{"12 EOS", Asset{Amount: 12, Symbol: Symbol{Precision: 0, Code: "EOS"}}},
		{"4611686018427387903 MAX", Asset{Amount: MaxAssetAmount, Symbol: Symbol{Code: "MAX"}}},
	}
	for _, tt := range tests {
		got, err := ParseAsset(tt.in)
		if err != nil {
			t.Errorf("ParseAsset(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAsset(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if s := got.String(); s != tt.in {
			t.Errorf("String() = %q, want %q", s, tt.in)
		}
	}
}

func TestParseAssetRejects(t *testing.T) {
	for _, in := range []string{
		"1.0000",
		"1.0000 tst",
		"abc TST",
		"1.0000 TOOLONGX",
		"4611686018427387904 TST",
		"-4611686018427387904 TST",
		"1.0000000000000000000 TST",
	} {
		if a, err := ParseAsset(in); err == nil {
			t.Errorf("ParseAsset(%q) = %+v, want error", in, a)
		}
	}
}

func TestAssetJSON(t *testing.T) {
	type holder struct {
		Fee   Asset `json:"fee"`
		Price Asset `json:"price"`
	}
	in := holder{Fee: MustParseAsset("2.5000 TST")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"fee":"2.5000 TST","price":""}`; string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
	var out holder
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("decoded %+v, want %+v", out, in)
	}
}

func TestParseSymbol(t *testing.T) {
	sym, err := ParseSymbol("4,TST")
	if err != nil {
		t.Fatalf("ParseSymbol: %v", err)
	}
	if sym != (Symbol{Precision: 4, Code: "TST"}) || sym.String() != "4,TST" {
		t.Errorf("ParseSymbol = %+v", sym)
	}
	for _, in := range []string{"TST", "19,TST", "4,", "x,TST"} {
		if _, err := ParseSymbol(in); err == nil {
			t.Errorf("ParseSymbol(%q) succeeded", in)
		}
	}
}
