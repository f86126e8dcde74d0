package repository

import (
	"errors"

	"users-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the email uniqueness
// constraint rejects the insert.
var ErrDuplicateEmail = errors.New("duplicate email")

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches, so callers can tell an
// absent user from an unreachable store.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Count() (int, error)
	List(limit, offset int) ([]*entity.User, error)
}
