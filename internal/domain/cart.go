package domain

import "time"

// CartLine is a persisted cart row. Quantity is always at least 1.
type CartLine struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartLineView is a cart line joined with its product.
type CartLineView struct {
	ID        string  `json:"id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
	LineTotal Money   `json:"lineTotal"`
}

// CartView is derived on every read and never stored.
type CartView struct {
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"itemCount"`
	Subtotal  Money          `json:"subtotal"`
	Quote     *ShippingQuote `json:"shippingQuote,omitempty"`
	Shipping  Money          `json:"shipping"`
	Total     Money          `json:"total"`
}

// Subtotal sums quantity times unit price over lines.
func Subtotal(lines []CartLineView) Money {
	var sum Money
	for _, l := range lines {
		sum += l.Product.Price.Times(l.Quantity)
	}
	return sum
}

// NewCartView recomputes every derived amount from lines and quote.
// Shipping always follows the current subtotal, not the amount stored in quote.
func NewCartView(lines []CartLineView, quote *ShippingQuote, policy ShippingPolicy) CartView {
	view := CartView{Lines: make([]CartLineView, 0, len(lines))}
	for _, l := range lines {
		l.LineTotal = l.Product.Price.Times(l.Quantity)
		view.Lines = append(view.Lines, l)
		view.ItemCount += l.Quantity
	}
	view.Subtotal = Subtotal(view.Lines)
	if quote != nil {
		q := policy.Quote(quote.PostalCode, quote.Address, view.Subtotal)
		view.Quote = &q
		view.Shipping = q.Amount
	}
	view.Total = view.Subtotal + view.Shipping
	return view
}
