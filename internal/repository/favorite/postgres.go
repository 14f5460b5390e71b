package favorite

import (
	"context"

	"luzeouro/internal/db"
	"luzeouro/internal/domain"
)

type postgresRepo struct {
	pool db.Querier
}

func NewPostgres(pool db.Querier) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Add(ctx context.Context, userID, productID string) error {
	const q = `
INSERT INTO favorites (user_id, product_id)
VALUES ($1::uuid, $2::uuid)
ON CONFLICT (user_id, product_id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, userID, productID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id::text = $1 AND product_id::text = $2`, userID, productID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	const q = `
SELECT p.id::text, p.name, p.price_cents, p.material, p.category_key, p.photo_url, p.created_at
FROM favorites f
JOIN products p ON p.id = f.product_id
WHERE f.user_id::text = $1
ORDER BY f.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var (
			p     domain.Product
			cents int64
		)
		if err := rows.Scan(&p.ID, &p.Name, &cents, &p.Material, &p.CategoryKey, &p.PhotoURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Price = domain.Money(cents)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id::text = $1`, userID)
	return err
}
