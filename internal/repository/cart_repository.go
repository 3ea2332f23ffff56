package repository

import (
	"context"

	"app/internal/domain/model"
)

// CartCount feeds the cart badge: distinct lines and summed quantity.
type CartCount struct {
	ItemCount     int64 `json:"item_count"`
	TotalQuantity int64 `json:"total_quantity"`
}

type CartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// ClearItems deletes every line of the cart; the cart row stays.
	ClearItems(ctx context.Context, cartID int64) error

	// Count returns zeros when the user has no cart yet.
	Count(ctx context.Context, userID int64) (CartCount, error)
}
