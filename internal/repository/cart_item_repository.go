package repository

import (
	"context"

	"app/internal/domain/model"
)

// CartItemDetail is a cart line joined with product, size and color
// names plus the variant's current stock (display only).
type CartItemDetail struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name"`
	ImageURL       string `json:"image_url"`
	SizeID         int64  `json:"size_id"`
	SizeName       string `json:"size_name"`
	ColorID        int64  `json:"color_id"`
	ColorName      string `json:"color_name"`
	ColorHex       string `json:"color_hex"`
	Quantity       int64  `json:"quantity"`
	Price          int64  `json:"price"`
	AvailableStock int64  `json:"available_stock"`
}

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	ListDetailByCartID(ctx context.Context, cartID int64) ([]CartItemDetail, error)

	// UpsertByVariant adds a line for (product, size, color), or adds
	// addQty to an existing line's quantity. price is the snapshot used
	// only when the line is first created.
	UpsertByVariant(ctx context.Context, cartID, productID, sizeID, colorID, addQty, price int64) error

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
