package domain

import "time"

const OrderStatusPending = "Pending"

type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	PostalCode    string    `json:"postalCode"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"paymentMethod"`
	Subtotal      Money     `json:"subtotal"`
	Shipping      Money     `json:"shipping"`
	Total         Money     `json:"total"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
