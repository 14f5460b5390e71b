package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"luzeouro/internal/db"
	"luzeouro/internal/domain"
)

var errInvalidQuantity = errors.New("quantity must be at least 1")

type postgresRepo struct {
	pool   db.Querier
	logger *zap.Logger
}

func NewPostgres(pool db.Querier, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("cart_repo")}
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLineView, error) {
	const q = `
SELECT c.id::text, c.quantity,
       p.id::text, p.name, p.price_cents, p.material, p.category_key, p.photo_url, p.created_at
FROM cart_items c
JOIN products p ON p.id = c.product_id
WHERE c.user_id::text = $1
ORDER BY c.created_at ASC, c.id ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("list cart", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLineView{}
	for rows.Next() {
		var (
			line  domain.CartLineView
			cents int64
		)
		if err := rows.Scan(
			&line.ID,
			&line.Quantity,
			&line.Product.ID,
			&line.Product.Name,
			&cents,
			&line.Product.Material,
			&line.Product.CategoryKey,
			&line.Product.PhotoURL,
			&line.Product.CreatedAt,
		); err != nil {
			return nil, err
		}
		line.Product.Price = domain.Money(cents)
		line.LineTotal = line.Product.Price.Times(line.Quantity)
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list cart rows", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return lines, nil
}

// AddOrIncrement inserts a line with quantity 1 or bumps the existing one.
func (r *postgresRepo) AddOrIncrement(ctx context.Context, userID, productID string) error {
	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1::uuid, $2::uuid, 1)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + 1
`
	if _, err := r.pool.Exec(ctx, q, userID, productID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		r.logger.Error("add cart item", zap.String("user_id", userID), zap.String("product_id", productID), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepo) UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) error {
	if quantity < 1 {
		return errInvalidQuantity
	}
	const q = `
UPDATE cart_items
SET quantity = $1
WHERE id::text = $2 AND user_id::text = $3
`
	cmd, err := r.pool.Exec(ctx, q, quantity, lineID, userID)
	if err != nil {
		r.logger.Error("update cart item", zap.String("line_id", lineID), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, userID, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id::text = $1 AND user_id::text = $2`, lineID, userID)
	if err != nil {
		r.logger.Error("delete cart item", zap.String("line_id", lineID), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
