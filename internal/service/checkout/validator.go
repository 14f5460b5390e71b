// Package checkout decides whether a cart may be submitted as an order.
//
// Checks run in a fixed order and the first failure is returned; later
// checks are not evaluated.
package checkout

import (
	"strings"
	"unicode/utf8"

	"luzeouro/internal/domain"
)

type Reason string

const (
	ReasonCartEmpty             Reason = "cart_empty"
	ReasonInvalidPostalCode     Reason = "invalid_postal_code"
	ReasonShippingNotCalculated Reason = "shipping_not_calculated"
	ReasonAddressIncomplete     Reason = "address_incomplete"
	ReasonHouseNumberRequired   Reason = "house_number_required"
	ReasonPaymentRequired       Reason = "payment_method_required"
	ReasonPaymentUnsupported    Reason = "payment_method_unsupported"
	ReasonInvalidCardNumber     Reason = "invalid_card_number"
	ReasonCardExpiryRequired    Reason = "card_expiry_required"
	ReasonInvalidCardCVV        Reason = "invalid_card_cvv"
)

var messages = map[Reason]string{
	ReasonCartEmpty:             "cart is empty",
	ReasonInvalidPostalCode:     "invalid postal code",
	ReasonShippingNotCalculated: "shipping not calculated",
	ReasonAddressIncomplete:     "address incomplete",
	ReasonHouseNumberRequired:   "house number required",
	ReasonPaymentRequired:       "payment method required",
	ReasonPaymentUnsupported:    "payment method not supported",
	ReasonInvalidCardNumber:     "invalid card number",
	ReasonCardExpiryRequired:    "card expiry required",
	ReasonInvalidCardCVV:        "invalid card cvv",
}

// ValidationError names the first failed check.
type ValidationError struct {
	Reason  Reason `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func fail(r Reason) *ValidationError {
	return &ValidationError{Reason: r, Message: messages[r]}
}

// Rules holds the configurable parts of validation.
type Rules struct {
	PaymentMethods   []domain.PaymentMethod
	RequireNumber    bool
	MinAddressLength int
	MinCardDigits    int
	MinCVVDigits     int
}

// DefaultRules enables card and PIX, requires a house number and an
// address of at least 5 characters.
func DefaultRules() Rules {
	return Rules{
		PaymentMethods:   []domain.PaymentMethod{domain.PaymentCreditCard, domain.PaymentPix},
		RequireNumber:    true,
		MinAddressLength: 5,
		MinCardDigits:    12,
		MinCVVDigits:     3,
	}
}

// Input is everything checkout looks at.
type Input struct {
	Lines   []domain.CartLineView
	Address domain.ShippingAddress
	Quote   *domain.ShippingQuote
	Payment domain.PaymentSelection
}

type Validator struct {
	rules Rules
}

func NewValidator(rules Rules) *Validator {
	if rules.MinCardDigits == 0 {
		rules.MinCardDigits = 12
	}
	if rules.MinCVVDigits == 0 {
		rules.MinCVVDigits = 3
	}
	return &Validator{rules: rules}
}

// Rules returns a copy of the active rules.
func (v *Validator) Rules() Rules {
	r := v.rules
	r.PaymentMethods = append([]domain.PaymentMethod(nil), v.rules.PaymentMethods...)
	return r
}

// Validate returns nil or a *ValidationError for the first failed check.
func (v *Validator) Validate(in Input) error {
	checks := []func(Input) *ValidationError{
		v.checkCart,
		v.checkPostalCode,
		v.checkQuote,
		v.checkAddress,
		v.checkNumber,
		v.checkPayment,
		v.checkCard,
	}
	for _, check := range checks {
		if err := check(in); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkCart(in Input) *ValidationError {
	if len(in.Lines) == 0 {
		return fail(ReasonCartEmpty)
	}
	return nil
}

func (v *Validator) checkPostalCode(in Input) *ValidationError {
	if len(domain.NormalizePostalCode(in.Address.PostalCode)) != domain.PostalCodeLength {
		return fail(ReasonInvalidPostalCode)
	}
	return nil
}

// checkQuote also rejects a quote resolved for a different postal code.
func (v *Validator) checkQuote(in Input) *ValidationError {
	if in.Quote == nil {
		return fail(ReasonShippingNotCalculated)
	}
	if domain.NormalizePostalCode(in.Quote.PostalCode) != domain.NormalizePostalCode(in.Address.PostalCode) {
		return fail(ReasonShippingNotCalculated)
	}
	return nil
}

func (v *Validator) checkAddress(in Input) *ValidationError {
	addr := strings.TrimSpace(in.Address.Address)
	if addr == "" || utf8.RuneCountInString(addr) < v.rules.MinAddressLength {
		return fail(ReasonAddressIncomplete)
	}
	return nil
}

func (v *Validator) checkNumber(in Input) *ValidationError {
	if v.rules.RequireNumber && strings.TrimSpace(in.Address.Number) == "" {
		return fail(ReasonHouseNumberRequired)
	}
	return nil
}

func (v *Validator) checkPayment(in Input) *ValidationError {
	if strings.TrimSpace(string(in.Payment.Method)) == "" {
		return fail(ReasonPaymentRequired)
	}
	for _, m := range v.rules.PaymentMethods {
		if m == in.Payment.Method {
			return nil
		}
	}
	return fail(ReasonPaymentUnsupported)
}

func (v *Validator) checkCard(in Input) *ValidationError {
	if in.Payment.Method != domain.PaymentCreditCard {
		return nil
	}
	if len(in.Payment.CardDigits()) < v.rules.MinCardDigits {
		return fail(ReasonInvalidCardNumber)
	}
	if strings.TrimSpace(in.Payment.CardExpiry) == "" {
		return fail(ReasonCardExpiryRequired)
	}
	if len(in.Payment.CVVDigits()) < v.rules.MinCVVDigits {
		return fail(ReasonInvalidCardCVV)
	}
	return nil
}
