package favorite

import (
	"context"
	"errors"
	"testing"

	"luzeouro/internal/domain"
)

type memoryRepo struct {
	marks map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{marks: map[string]bool{}}
}

func (r *memoryRepo) Add(_ context.Context, userID, productID string) error {
	r.marks[userID+"/"+productID] = true
	return nil
}

func (r *memoryRepo) Remove(_ context.Context, userID, productID string) (bool, error) {
	key := userID + "/" + productID
	if !r.marks[key] {
		return false, nil
	}
	delete(r.marks, key)
	return true, nil
}

func (r *memoryRepo) ListProducts(_ context.Context, _ string) ([]domain.Product, error) {
	out := []domain.Product{}
	for range r.marks {
		out = append(out, domain.Product{})
	}
	return out, nil
}

func (r *memoryRepo) Clear(_ context.Context, _ string) error {
	r.marks = map[string]bool{}
	return nil
}

const (
	ringID     = "5b0f7c3e-2a41-4e8d-9c6a-0d3f1e7b9a21"
	necklaceID = "9e2d4a10-6c3b-4f58-8a7e-1b5c0f3d2e64"
)

func TestToggleTwiceLeavesNoMark(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "u1", ringID)
	if err != nil || !on {
		t.Fatalf("expected first toggle to favorite, got %v %v", on, err)
	}
	on, err = svc.Toggle(ctx, "u1", ringID)
	if err != nil || on {
		t.Fatalf("expected second toggle to unfavorite, got %v %v", on, err)
	}
	if len(repo.marks) != 0 {
		t.Fatalf("expected no marks, got %v", repo.marks)
	}
}

func TestRemoveAndClear(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)
	ctx := context.Background()

	if err := svc.Remove(ctx, "u1", ringID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_ = repo.Add(ctx, "u1", ringID)
	_ = repo.Add(ctx, "u1", necklaceID)
	if err := svc.Remove(ctx, "u1", ringID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	list, _ := svc.List(ctx, "u1")
	if len(list) != 0 {
		t.Fatalf("expected empty favorites, got %d", len(list))
	}
}

func TestFavoritesRequireUser(t *testing.T) {
	svc := New(newMemoryRepo())
	if _, err := svc.Toggle(context.Background(), "", ringID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), "u1", ""); err == nil || err.Error() != "product id required" {
		t.Fatalf("expected product id error, got %v", err)
	}
}

func TestMalformedProductIDIsNotFound(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)
	ctx := context.Background()
	if _, err := svc.Toggle(ctx, "u1", "p1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Toggle: expected ErrNotFound, got %v", err)
	}
	if err := svc.Remove(ctx, "u1", "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Remove: expected ErrNotFound, got %v", err)
	}
	if len(repo.marks) != 0 {
		t.Fatalf("expected no marks, got %v", repo.marks)
	}
}
