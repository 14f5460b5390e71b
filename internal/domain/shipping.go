package domain

import "strings"

// PostalCodeLength is the digit count of a CEP.
const PostalCodeLength = 8

// ShippingPolicy is the flat-rate rule with a free-shipping threshold.
type ShippingPolicy struct {
	FreeThreshold Money
	FlatFee       Money
}

// Fee returns zero when subtotal reaches the threshold, the flat fee otherwise.
func (p ShippingPolicy) Fee(subtotal Money) Money {
	if subtotal >= p.FreeThreshold {
		return 0
	}
	return p.FlatFee
}

func (p ShippingPolicy) Quote(postalCode, address string, subtotal Money) ShippingQuote {
	fee := p.Fee(subtotal)
	return ShippingQuote{
		PostalCode: postalCode,
		Address:    address,
		Free:       fee == 0,
		Amount:     fee,
	}
}

type ShippingQuote struct {
	PostalCode string `json:"postalCode"`
	Address    string `json:"address"`
	Free       bool   `json:"free"`
	Amount     Money  `json:"amount"`
}

// ShippingAddress is what the shopper types at checkout.
type ShippingAddress struct {
	PostalCode string `json:"postalCode"`
	Address    string `json:"address"`
	Number     string `json:"number"`
}

// Line renders the address with the house number appended.
func (a ShippingAddress) Line() string {
	addr := strings.TrimSpace(a.Address)
	if n := strings.TrimSpace(a.Number); n != "" {
		return addr + ", nº " + n
	}
	return addr
}

// NormalizePostalCode strips every non-digit character.
func NormalizePostalCode(raw string) string {
	return digitsOnly(raw)
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
