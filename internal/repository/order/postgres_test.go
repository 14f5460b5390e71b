package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"luzeouro/internal/domain"
)

var orderCols = []string{"id", "user_id", "postal_code", "address", "payment_method",
	"subtotal_cents", "shipping_cents", "total_cents", "status", "created_at"}

func sampleOrder() domain.Order {
	return domain.Order{
		UserID:        "u1",
		PostalCode:    "01001000",
		Address:       "Praça da Sé, Sé, São Paulo - SP, nº 10",
		PaymentMethod: "PIX",
		Subtotal:      20000,
		Shipping:      2990,
		Total:         22990,
	}
}

func anyOrderArgs() []any {
	args := make([]any, 8)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestPlaceInsertsThenClearsCart(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}
	defer mock.Close()

	o := sampleOrder()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(o.UserID, o.PostalCode, o.Address, o.PaymentMethod, int64(20000), int64(2990), int64(22990), domain.OrderStatusPending).
		WillReturnRows(pgxmock.NewRows(orderCols).
			AddRow("o1", "u1", o.PostalCode, o.Address, "PIX", int64(20000), int64(2990), int64(22990), "Pending", time.Now()))
	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	repo := NewPostgres(mock, nil)
	placed, err := repo.Place(context.Background(), o)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if placed.ID != "o1" || placed.Total != 22990 || placed.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order %+v", placed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPlaceInsertFailureNeverClearsCart(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(anyOrderArgs()...).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := NewPostgres(mock, nil)
	_, err = repo.Place(context.Background(), sampleOrder())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected insert error, got %v", err)
	}
	// an unexpected DELETE would have failed the mock before this point
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPlaceClearFailureRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("new mock: %v", err)
	}
	defer mock.Close()

	o := sampleOrder()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(anyOrderArgs()...).
		WillReturnRows(pgxmock.NewRows(orderCols).
			AddRow("o1", "u1", o.PostalCode, o.Address, "PIX", int64(20000), int64(2990), int64(22990), "Pending", time.Now()))
	mock.ExpectExec(`DELETE FROM cart_items`).
		WithArgs("u1").
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	repo := NewPostgres(mock, nil)
	_, err = repo.Place(context.Background(), o)
	if err == nil || !strings.Contains(err.Error(), "lock timeout") {
		t.Fatalf("expected clear error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
