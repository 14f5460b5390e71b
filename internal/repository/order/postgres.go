package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"luzeouro/internal/db"
	"luzeouro/internal/domain"
)

const orderColumns = `id::text, user_id::text, postal_code, address, payment_method,
       subtotal_cents, shipping_cents, total_cents, status, created_at`

type postgresRepo struct {
	pool   db.Querier
	logger *zap.Logger
}

func NewPostgres(pool db.Querier, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("order_repo")}
}

func (r *postgresRepo) Place(ctx context.Context, o domain.Order) (placed *domain.Order, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if err = tx.Commit(ctx); err != nil {
			placed = nil
			err = fmt.Errorf("commit: %w", err)
		}
	}()

	status := o.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	q := `
INSERT INTO orders (user_id, postal_code, address, payment_method, subtotal_cents, shipping_cents, total_cents, status)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + orderColumns
	out, err := scanOrder(tx.QueryRow(ctx, q,
		o.UserID,
		o.PostalCode,
		o.Address,
		o.PaymentMethod,
		int64(o.Subtotal),
		int64(o.Shipping),
		int64(o.Total),
		status,
	))
	if err != nil {
		r.logger.Error("insert order", zap.String("user_id", o.UserID), zap.Error(err))
		return nil, fmt.Errorf("insert order: %w", err)
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id::text = $1`, o.UserID)
	if err != nil {
		r.logger.Error("clear cart", zap.String("user_id", o.UserID), zap.Error(err))
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	r.logger.Info("order placed",
		zap.String("order_id", out.ID),
		zap.String("user_id", o.UserID),
		zap.Int64("cleared_lines", cmd.RowsAffected()),
	)
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id::text = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list orders", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o                         domain.Order
		subtotal, shipping, total int64
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.PostalCode, &o.Address, &o.PaymentMethod,
		&subtotal, &shipping, &total, &o.Status, &o.CreatedAt); err != nil {
		return domain.Order{}, err
	}
	o.Subtotal = domain.Money(subtotal)
	o.Shipping = domain.Money(shipping)
	o.Total = domain.Money(total)
	return o, nil
}
