package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-user-accounts/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeInvalidTextLiteral  = "22P02"
	usersEmailConstraintKey = "users_email_key"
	emailCodesCodeKey       = "email_codes_code_key"
)

// mapErr translates pgx errors into repository sentinels.
// A malformed UUID can never match a row, so it is reported as not found.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeInvalidTextLiteral:
			return repository.ErrNotFound
		case codeUniqueViolation:
			switch pgErr.ConstraintName {
			case usersEmailConstraintKey:
				return repository.ErrDuplicateEmail
			case emailCodesCodeKey:
				return repository.ErrDuplicateCode
			}
		}
	}
	return err
}

// validID reports whether id can be a primary key at all.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
