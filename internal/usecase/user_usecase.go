package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

type UpdateProfileInput struct {
	Email    *string
	FullName *string
}

// UserPagination mirrors the shape the admin user screen expects.
type UserPagination struct {
	Current    int   `json:"current"`
	Total      int   `json:"total"`
	Count      int   `json:"count"`
	TotalUsers int64 `json:"total_users"`
}

type UserListResponse struct {
	Users      []model.User   `json:"users"`
	Pagination UserPagination `json:"pagination"`
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

// UpdateProfile overwrites only the fields present in the input; a nil
// field keeps the stored value.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	current, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	email := current.Email
	if in.Email != nil {
		e := strings.TrimSpace(strings.ToLower(*in.Email))
		if !emailRe.MatchString(e) {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid email")
		}
		if e != current.Email {
			existing, err := u.users.FindByEmail(ctx, e)
			if err == nil && existing != nil && existing.ID != userID {
				return nil, NewHTTPError(http.StatusBadRequest, "email already in use")
			}
			if err != nil && !errors.Is(err, repo.ErrUserNotFound) {
				return nil, NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		email = e
	}

	fullName := current.FullName
	if in.FullName != nil {
		n := strings.TrimSpace(*in.FullName)
		if n == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "full name must not be blank")
		}
		fullName = n
	}

	current.Email = email
	current.FullName = fullName

	if err := u.users.UpdateProfile(ctx, current); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, NewHTTPError(http.StatusBadRequest, "email already in use")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	updated, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

// ListUsers is admin only; the role check lives in the route guard.
func (u *UserUsecase) ListUsers(ctx context.Context, page, limit int) (UserListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return UserListResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return UserListResponse{
		Users: users,
		Pagination: UserPagination{
			Current:    page,
			Total:      pages,
			Count:      len(users),
			TotalUsers: total,
		},
	}, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

// Deactivate soft-deletes an account. Admins may deactivate anyone;
// everyone else only themselves.
func (u *UserUsecase) Deactivate(ctx context.Context, callerID int64, callerRole model.Role, targetID int64) error {
	if callerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if targetID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if callerID != targetID && callerRole != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "not authorized to perform this action")
	}

	err := u.users.Deactivate(ctx, targetID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
