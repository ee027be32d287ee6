package repository

import (
	"context"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

// EmailCodeRepository stores one-time email codes.
type EmailCodeRepository interface {
	Create(ctx context.Context, c *entity.EmailCode) error
	GetByCode(ctx context.Context, code string) (*entity.EmailCode, error)
	Delete(ctx context.Context, id string) error
}
