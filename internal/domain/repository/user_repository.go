package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-accounts/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the lookup or the mutation filter.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned by Create when the email is already registered.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrDuplicateCode is returned when a generated email code collides with a stored one.
	ErrDuplicateCode = errors.New("email code already exists")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateProfile, UpdatePassword and SetVerified return the updated row, or ErrNotFound.
	UpdateProfile(ctx context.Context, id string, p entity.ProfileUpdate) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) (*entity.User, error)
	SetVerified(ctx context.Context, id string) (*entity.User, error)
	// Delete removes the user if present. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
