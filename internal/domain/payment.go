package domain

import "strings"

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCreditCard: "Credit Card",
	PaymentPix:        "PIX",
	PaymentBoleto:     "Boleto",
}

// Label is the human readable name stored on orders.
func (m PaymentMethod) Label() string {
	if l, ok := paymentLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m PaymentMethod) Known() bool {
	_, ok := paymentLabels[m]
	return ok
}

// ParsePaymentMethod accepts a key ("pix") or a label ("Credit Card"),
// case-insensitively. Unknown input is returned as-is so callers can
// reject it with a precise reason.
func ParsePaymentMethod(raw string) PaymentMethod {
	s := strings.TrimSpace(raw)
	for m, label := range paymentLabels {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, label) {
			return m
		}
	}
	return PaymentMethod(s)
}

// PaymentSelection carries the chosen method and, for cards, the card
// fields. Card data is validated but never stored.
type PaymentSelection struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"cardNumber,omitempty"`
	CardExpiry string        `json:"cardExpiry,omitempty"`
	CardCVV    string        `json:"cardCvv,omitempty"`
}

// CardDigits returns the card number without spaces or separators.
func (p PaymentSelection) CardDigits() string {
	return digitsOnly(p.CardNumber)
}

func (p PaymentSelection) CVVDigits() string {
	return digitsOnly(p.CardCVV)
}
