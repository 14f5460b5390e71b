package favorite

import (
	"context"

	"luzeouro/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, userID, productID string) error
	// Remove reports whether a mark existed.
	Remove(ctx context.Context, userID, productID string) (bool, error)
	ListProducts(ctx context.Context, userID string) ([]domain.Product, error)
	Clear(ctx context.Context, userID string) error
}
