package profile

import (
	"context"

	"luzeouro/internal/domain"
)

type Repository interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error)
	SetDarkMode(ctx context.Context, userID string, dark bool) error
}
