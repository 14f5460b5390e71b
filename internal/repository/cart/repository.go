package cart

import (
	"context"

	"luzeouro/internal/domain"
)

// Repository stores cart rows. Every call is scoped by user id so a line
// id from another user never matches.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.CartLineView, error)
	AddOrIncrement(ctx context.Context, userID, productID string) error
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error
	Delete(ctx context.Context, userID, lineID string) error
}
