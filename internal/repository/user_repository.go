package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is a uniqueness violation on users.email,
	// surfaced by the infra layer from the driver error.
	ErrDuplicateEmail = errors.New("email already taken")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List pages through all users, newest first, with the total row
	// count for pagination.
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)

	// UpdateProfile writes email and full_name only.
	UpdateProfile(ctx context.Context, user *model.User) error

	// Deactivate flips is_active off; the row stays.
	Deactivate(ctx context.Context, userID int64) error
}
