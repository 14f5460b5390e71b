package profile

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"luzeouro/internal/domain"
	profilerepo "luzeouro/internal/repository/profile"
	"luzeouro/internal/theme"
)

type Service struct {
	repo profilerepo.Repository
}

func New(repo profilerepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.Get(ctx, userID)
}

type UpdateInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (*domain.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, domain.Invalid("full name required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.Invalid("valid email required")
	}
	return s.repo.Upsert(ctx, domain.UserProfile{UserID: userID, FullName: name, Email: email})
}

// Theme returns the stored theme. A user without a profile gets light.
func (s *Service) Theme(ctx context.Context, userID string) (theme.Theme, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return theme.FromDarkMode(false), nil
		}
		return theme.Theme{}, err
	}
	return theme.FromDarkMode(p.DarkMode), nil
}

func (s *Service) ToggleTheme(ctx context.Context, userID string) (theme.Theme, error) {
	current, err := s.Theme(ctx, userID)
	if err != nil {
		return theme.Theme{}, err
	}
	next := current.Toggle()
	if err := s.repo.SetDarkMode(ctx, userID, next.IsDark()); err != nil {
		return theme.Theme{}, err
	}
	return next, nil
}
