package order

import (
	"context"

	"luzeouro/internal/domain"
)

type Repository interface {
	// Place inserts the order and empties the user's cart in one transaction.
	Place(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}
