package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

type EmailCodeRepository struct {
	pool *pgxpool.Pool
}

func NewEmailCodeRepository(pool *pgxpool.Pool) *EmailCodeRepository {
	return &EmailCodeRepository{pool: pool}
}

func (r *EmailCodeRepository) Create(ctx context.Context, c *entity.EmailCode) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO email_codes (id, code, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, c.ID, c.Code, c.UserID)
	return mapErr(row.Scan(&c.CreatedAt))
}

func (r *EmailCodeRepository) GetByCode(ctx context.Context, code string) (*entity.EmailCode, error) {
	c := &entity.EmailCode{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, code, user_id, created_at
		FROM email_codes
		WHERE code = $1
	`, code)
	if err := row.Scan(&c.ID, &c.Code, &c.UserID, &c.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *EmailCodeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM email_codes WHERE id = $1`, id)
	return err
}

var _ repository.EmailCodeRepository = (*EmailCodeRepository)(nil)
