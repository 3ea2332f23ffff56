package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PasswordHasher turns a plaintext password into a stored hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type RegisterUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewRegisterUsecase(users repository.UserRepository, hasher PasswordHasher) *RegisterUsecase {
	return &RegisterUsecase{users: users, hasher: hasher}
}

func (u *RegisterUsecase) Execute(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return nil, ErrInvalidInput
	}
	if !isEmailLike(email) {
		return nil, ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return nil, ErrInvalidInput
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         model.RoleCustomer,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		// A concurrent register can slip past the FindByEmail check
		// and lose the race on the unique index.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
