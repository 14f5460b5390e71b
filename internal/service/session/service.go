// Package session signs users up, in and out, and resolves bearer tokens.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"luzeouro/internal/domain"
	tokenrepo "luzeouro/internal/repository/token"
	userrepo "luzeouro/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

type profileWriter interface {
	Upsert(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error)
}

// Service handles account and token flows.
type Service struct {
	users       userrepo.Repository
	profiles    profileWriter
	tokenRepo   tokenrepo.Repository
	tokens      *tokenManager
	logger      *zap.Logger
	accessTTL   time.Duration
	refreshTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, profiles profileWriter, tokens tokenrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:       users,
		profiles:    profiles,
		tokenRepo:   tokens,
		tokens:      newTokenManager(tokens),
		logger:      logger.Named("session"),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		passwordMin: 8,
	}
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Tokens is the result of a successful sign in or refresh.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn"`
}

// SignUp creates the account and its profile.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*domain.User, *domain.UserProfile, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, nil, err
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return nil, nil, domain.Invalid("full name required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u, err := s.users.Create(ctx, domain.User{Email: email, PasswordHash: string(hashed)})
	if err != nil {
		return nil, nil, err
	}
	p, err := s.profiles.Upsert(ctx, domain.UserProfile{UserID: u.ID, FullName: name, Email: email})
	if err != nil {
		s.logger.Error("create profile", zap.String("user_id", u.ID), zap.Error(err))
		// drop the account so the email can sign up again
		if derr := s.users.Delete(context.WithoutCancel(ctx), u.ID); derr != nil {
			s.logger.Error("remove user without profile", zap.String("user_id", u.ID), zap.Error(derr))
		}
		return nil, nil, fmt.Errorf("create profile: %w", err)
	}
	s.logger.Info("user signed up", zap.String("user_id", u.ID))
	return u, p, nil
}

// SignIn validates credentials and issues an access and a refresh token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*domain.User, Tokens, error) {
	password = strings.TrimSpace(password)
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, Tokens{}, ErrInvalidCredentials
		}
		return nil, Tokens{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, Tokens{}, ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.ID, kindAccess, s.accessTTL)
	if err != nil {
		return nil, Tokens{}, err
	}
	refresh, err := s.tokens.Issue(ctx, u.ID, kindRefresh, s.refreshTTL)
	if err != nil {
		return nil, Tokens{}, err
	}
	return u, Tokens{AccessToken: access, RefreshToken: refresh, ExpiresIn: s.AccessTTLSeconds()}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	userID, ok := s.tokens.Validate(ctx, refreshToken, kindRefresh)
	if !ok {
		return Tokens{}, ErrInvalidToken
	}
	access, err := s.tokens.Issue(ctx, userID, kindAccess, s.accessTTL)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: access, ExpiresIn: s.AccessTTLSeconds()}, nil
}

// SignOut revokes the given token.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.tokenRepo.Delete(ctx, token); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// CurrentUser returns the user bound to a valid access token. It is
// looked up on every call and never cached.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token, kindAccess)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword replaces the password and revokes every token of the user.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if err := validatePassword(next, s.passwordMin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}
	return s.tokenRepo.DeleteByUser(ctx, userID)
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", domain.Invalid("email required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.Invalid("valid email required")
	}
	return email, nil
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return domain.Invalid(fmt.Sprintf("password must be at least %d characters", min))
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.Invalid("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
