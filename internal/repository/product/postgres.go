package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"luzeouro/internal/db"
	"luzeouro/internal/domain"
)

const productColumns = `id::text, name, price_cents, material, category_key, photo_url, created_at`

type postgresRepo struct {
	pool   db.Querier
	logger *zap.Logger
}

func NewPostgres(pool db.Querier, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger.Named("product_repo")}
}

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	q, args := listQuery(filter)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("list products", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list products rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("list products", zap.Int("count", len(result)))
	return result, nil
}

// listQuery builds the filtered catalog query. Band bounds follow
// domain.PriceBand: exclusive lower, inclusive upper.
func listQuery(filter domain.ProductFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.CategoryKey != "" {
		add("category_key = $%d", filter.CategoryKey)
	}
	if filter.Material != "" {
		add("lower(material) = lower($%d)", filter.Material)
	}
	if lower, upper, ok := filter.Band.Bounds(); ok {
		add("price_cents > $%d", int64(lower))
		if upper > 0 {
			add("price_cents <= $%d", int64(upper))
		}
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC, name ASC`
	return q, args
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id::text = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get product", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Materials(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT material FROM products WHERE material <> '' ORDER BY material`)
	if err != nil {
		r.logger.Error("list materials", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	q := `
INSERT INTO products (id, name, price_cents, material, category_key, photo_url)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    price_cents = EXCLUDED.price_cents,
    material = EXCLUDED.material,
    category_key = EXCLUDED.category_key,
    photo_url = EXCLUDED.photo_url
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		int64(product.Price),
		product.Material,
		product.CategoryKey,
		product.PhotoURL,
	))
	if err != nil {
		r.logger.Error("upsert product", zap.String("name", product.Name), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		cents int64
	)
	if err := row.Scan(&p.ID, &p.Name, &cents, &p.Material, &p.CategoryKey, &p.PhotoURL, &p.CreatedAt); err != nil {
		return domain.Product{}, err
	}
	p.Price = domain.Money(cents)
	return p, nil
}
