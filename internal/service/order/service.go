package order

import (
	"context"
	"strings"

	"luzeouro/internal/domain"
	orderrepo "luzeouro/internal/repository/order"
)

type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// History lists the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}
