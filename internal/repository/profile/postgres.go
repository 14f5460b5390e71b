package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"luzeouro/internal/db"
	"luzeouro/internal/domain"
)

type postgresRepo struct {
	pool db.Querier
}

func NewPostgres(pool db.Querier) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	const q = `
SELECT user_id::text, full_name, email, dark_mode, updated_at
FROM user_profiles
WHERE user_id::text = $1
`
	var p domain.UserProfile
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&p.UserID, &p.FullName, &p.Email, &p.DarkMode, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert writes name and email. The dark-mode flag is left untouched on update.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error) {
	const q = `
INSERT INTO user_profiles (user_id, full_name, email, dark_mode)
VALUES ($1::uuid, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET full_name = EXCLUDED.full_name,
    email = EXCLUDED.email,
    updated_at = now()
RETURNING user_id::text, full_name, email, dark_mode, updated_at
`
	var out domain.UserProfile
	if err := r.pool.QueryRow(ctx, q, p.UserID, p.FullName, p.Email, p.DarkMode).Scan(
		&out.UserID, &out.FullName, &out.Email, &out.DarkMode, &out.UpdatedAt,
	); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) SetDarkMode(ctx context.Context, userID string, dark bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE user_profiles SET dark_mode = $1, updated_at = now() WHERE user_id::text = $2`, dark, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
