package repository

import (
	"context"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
}

// AdminOrderRow is an order joined with its owner and line count for
// the admin listing.
type AdminOrderRow struct {
	Order     model.Order `json:"order"`
	UserEmail string      `json:"user_email"`
	UserName  string      `json:"user_name"`
	ItemCount int64       `json:"item_count"`
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// ListByUserID returns the user's orders newest first, with the
	// total matching rows for pagination. status == "" means all.
	ListByUserID(ctx context.Context, userID int64, page, limit int, status string) ([]model.Order, int64, error)

	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]AdminOrderRow, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
