package favorite

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"luzeouro/internal/domain"
	favoriterepo "luzeouro/internal/repository/favorite"
)

var errProductRequired = domain.Invalid("product id required")

type Service struct {
	repo favoriterepo.Repository
}

func New(repo favoriterepo.Repository) *Service {
	return &Service{repo: repo}
}

// Toggle flips the mark and reports whether the product is now a favorite.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	if err := check(userID, productID); err != nil {
		return false, err
	}
	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}
	if err := s.repo.Add(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Product, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListProducts(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if err := check(userID, productID); err != nil {
		return err
	}
	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthenticated
	}
	return s.repo.Clear(ctx, userID)
}

func check(userID, productID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrUnauthenticated
	}
	if strings.TrimSpace(productID) == "" {
		return errProductRequired
	}
	// product ids are uuids; anything else cannot name a product
	if _, err := uuid.Parse(productID); err != nil || len(productID) != 36 {
		return domain.ErrNotFound
	}
	return nil
}
