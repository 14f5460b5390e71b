package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"luzeouro/internal/domain"
)

const (
	OrderPlacedQueue = "order.placed"
	OrderPlacedType  = "OrderPlaced"
)

// OrderPlaced is published after an order row has been committed.
type OrderPlaced struct {
	EventID       string       `json:"eventId"`
	EventType     string       `json:"eventType"`
	OrderID       string       `json:"orderId"`
	UserID        string       `json:"userId"`
	Total         domain.Money `json:"total"`
	PaymentMethod string       `json:"paymentMethod"`
	OccurredAt    time.Time    `json:"occurredAt"`
}

func NewOrderPlaced(o domain.Order, now time.Time) OrderPlaced {
	return OrderPlaced{
		EventID:       uuid.NewString(),
		EventType:     OrderPlacedType,
		OrderID:       o.ID,
		UserID:        o.UserID,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		OccurredAt:    now.UTC(),
	}
}

// OrderPublisher announces placed orders to interested consumers, such as
// a notification sender.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, o domain.Order) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, domain.Order) error { return nil }
