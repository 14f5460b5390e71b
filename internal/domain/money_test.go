package domain

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"399.90", 39990},
		{"29.9", 2990},
		{" 100 ", 10000},
		{"0.005", 1},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
	if _, err := ParseMoney("abc"); err == nil {
		t.Fatalf("expected error for non numeric input")
	}
}

func TestMoneyJSONUsesTwoDecimals(t *testing.T) {
	b, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: 22990})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"total":229.90}` {
		t.Fatalf("unexpected json %s", b)
	}

	var in struct {
		Price Money `json:"price"`
	}
	if err := json.Unmarshal([]byte(`{"price":"12.5"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if in.Price != 1250 {
		t.Fatalf("expected 1250 cents, got %d", in.Price)
	}
}

func TestShippingPolicyFee(t *testing.T) {
	p := ShippingPolicy{FreeThreshold: 39990, FlatFee: 2990}
	if fee := p.Fee(39989); fee != 2990 {
		t.Fatalf("expected flat fee below threshold, got %s", fee)
	}
	if fee := p.Fee(39990); fee != 0 {
		t.Fatalf("expected free shipping at threshold, got %s", fee)
	}
}
