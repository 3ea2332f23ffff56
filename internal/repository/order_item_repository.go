package repository

import (
	"context"

	"app/internal/domain/model"
)

// OrderItemDetail is an order line joined with product, size and
// color names.
type OrderItemDetail struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url"`
	SizeID      int64  `json:"size_id"`
	SizeName    string `json:"size_name"`
	ColorID     int64  `json:"color_id"`
	ColorName   string `json:"color_name"`
	ColorHex    string `json:"color_hex"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	ListDetailByOrderID(ctx context.Context, orderID int64) ([]OrderItemDetail, error)
}
