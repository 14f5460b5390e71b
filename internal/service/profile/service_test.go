package profile

import (
	"context"
	"errors"
	"testing"

	"luzeouro/internal/domain"
)

type memoryRepo struct {
	profiles map[string]domain.UserProfile
}

func (r *memoryRepo) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) Upsert(_ context.Context, p domain.UserProfile) (*domain.UserProfile, error) {
	if existing, ok := r.profiles[p.UserID]; ok {
		p.DarkMode = existing.DarkMode
	}
	r.profiles[p.UserID] = p
	return &p, nil
}

func (r *memoryRepo) SetDarkMode(_ context.Context, userID string, dark bool) error {
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	p.DarkMode = dark
	r.profiles[userID] = p
	return nil
}

func TestUpdateValidates(t *testing.T) {
	svc := New(&memoryRepo{profiles: map[string]domain.UserProfile{}})
	ctx := context.Background()

	if _, err := svc.Update(ctx, "u1", UpdateInput{FullName: " ", Email: "a@b.com"}); err == nil || err.Error() != "full name required" {
		t.Fatalf("expected name error, got %v", err)
	}
	if _, err := svc.Update(ctx, "u1", UpdateInput{FullName: "Ana", Email: "nope"}); err == nil || err.Error() != "valid email required" {
		t.Fatalf("expected email error, got %v", err)
	}
	p, err := svc.Update(ctx, "u1", UpdateInput{FullName: " Ana ", Email: "Ana@Example.com"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.FullName != "Ana" || p.Email != "ana@example.com" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestToggleThemePersists(t *testing.T) {
	repo := &memoryRepo{profiles: map[string]domain.UserProfile{"u1": {UserID: "u1"}}}
	svc := New(repo)
	ctx := context.Background()

	th, err := svc.ToggleTheme(ctx, "u1")
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if !th.IsDark() || !repo.profiles["u1"].DarkMode {
		t.Fatalf("expected dark mode persisted, got %+v", th)
	}
	th, _ = svc.Theme(ctx, "u1")
	if !th.IsDark() {
		t.Fatalf("expected stored theme to be dark")
	}
}

func TestThemeDefaultsToLightWithoutProfile(t *testing.T) {
	svc := New(&memoryRepo{profiles: map[string]domain.UserProfile{}})
	th, err := svc.Theme(context.Background(), "u2")
	if err != nil || th.IsDark() {
		t.Fatalf("expected light theme, got %+v %v", th, err)
	}
	if _, err := svc.ToggleTheme(context.Background(), "u2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without profile, got %v", err)
	}
}
