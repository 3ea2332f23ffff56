package auth

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainVerifier struct{}

func (plainVerifier) Verify(plain string, hashed string) bool {
	return hashed == "hashed:"+plain
}

type stubIssuer struct {
	token string
	ttl   time.Duration
}

func (s stubIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return s.token, now.Add(s.ttl), nil
}

func TestLoginUsecase_Execute(t *testing.T) {
	users := &mockUserRepo{}
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	uc := NewLoginUsecase(users, plainVerifier{}, stubIssuer{token: "tok-123", ttl: 15 * time.Minute}, fixedClock{t: now})

	ctx := context.Background()

	users.On("FindByEmail", ctx, "buyer@example.com").
		Return(&model.User{
			ID:           7,
			Email:        "buyer@example.com",
			PasswordHash: "hashed:secret-password",
			Role:         model.RoleCustomer,
			IsActive:     true,
		}, nil)

	out, err := uc.Execute(ctx, LoginInput{Email: "Buyer@Example.com", Password: "secret-password"})
	require.NoError(t, err)

	assert.Equal(t, "tok-123", out.AccessToken)
	assert.Equal(t, 15*60, out.ExpiresIn)
	assert.Equal(t, int64(7), out.User.ID)
}

func TestLoginUsecase_Execute_WrongPassword(t *testing.T) {
	users := &mockUserRepo{}
	uc := NewLoginUsecase(users, plainVerifier{}, stubIssuer{token: "x", ttl: time.Minute}, fixedClock{t: time.Now()})

	ctx := context.Background()

	users.On("FindByEmail", ctx, "buyer@example.com").
		Return(&model.User{ID: 7, PasswordHash: "hashed:other"}, nil)

	_, err := uc.Execute(ctx, LoginInput{Email: "buyer@example.com", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUsecase_Execute_DeactivatedAccount(t *testing.T) {
	users := &mockUserRepo{}
	uc := NewLoginUsecase(users, plainVerifier{}, stubIssuer{token: "x", ttl: time.Minute}, fixedClock{t: time.Now()})

	ctx := context.Background()

	users.On("FindByEmail", ctx, "gone@example.com").
		Return(&model.User{ID: 7, PasswordHash: "hashed:secret-password", IsActive: false}, nil)

	_, err := uc.Execute(ctx, LoginInput{Email: "gone@example.com", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUsecase_Execute_UnknownEmail(t *testing.T) {
	users := &mockUserRepo{}
	uc := NewLoginUsecase(users, plainVerifier{}, stubIssuer{token: "x", ttl: time.Minute}, fixedClock{t: time.Now()})

	ctx := context.Background()

	users.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	// Unknown email and wrong password look identical to the caller.
	_, err := uc.Execute(ctx, LoginInput{Email: "ghost@example.com", Password: "secret-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUsecase_Execute_MissingFields(t *testing.T) {
	users := &mockUserRepo{}
	uc := NewLoginUsecase(users, plainVerifier{}, stubIssuer{token: "x", ttl: time.Minute}, fixedClock{t: time.Now()})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
	users.AssertNotCalled(t, "FindByEmail")
}

func TestBcryptRoundTrip(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)
	verifier := NewBcryptPasswordVerifier()

	hashed, err := hasher.Hash("secret-password")
	require.NoError(t, err)

	assert.True(t, verifier.Verify("secret-password", hashed))
	assert.False(t, verifier.Verify("wrong", hashed))
}
