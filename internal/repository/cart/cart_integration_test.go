package cart

import (
	"context"
	"testing"

	"luzeouro/internal/dbtest"
)

func TestPostgres_AddIncrementUpdateDelete(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	userID := dbtest.InsertUser(t, pool, "ana@example.com")
	productID := dbtest.InsertProduct(t, pool, "Anel Aurora", 10000)

	repo := NewPostgres(pool, nil)
	if err := repo.AddOrIncrement(ctx, userID, productID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddOrIncrement(ctx, userID, productID); err != nil {
		t.Fatalf("add again: %v", err)
	}

	lines, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", lines)
	}

	if err := repo.UpdateQuantity(ctx, userID, lines[0].ID, 5); err != nil {
		t.Fatalf("update: %v", err)
	}
	lines, _ = repo.ListByUser(ctx, userID)
	if lines[0].Quantity != 5 || lines[0].LineTotal != 50000 {
		t.Fatalf("unexpected line after update %+v", lines[0])
	}

	if err := repo.Delete(ctx, userID, lines[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	lines, _ = repo.ListByUser(ctx, userID)
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}
