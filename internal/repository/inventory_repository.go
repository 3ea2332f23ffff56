package repository

import "context"

// InventoryDetail is one variant row with its size/color names, used
// by the product detail response and the admin inventory view.
type InventoryDetail struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	SizeID        int64  `json:"size_id"`
	SizeName      string `json:"size_name"`
	ColorID       int64  `json:"color_id"`
	ColorName     string `json:"color_name"`
	ColorHex      string `json:"color_hex"`
	StockQuantity int64  `json:"stock_quantity"`
}

type InventoryRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]InventoryDetail, error)

	// UpsertStock sets the absolute stock level for a variant,
	// creating the row if it does not exist yet.
	UpsertStock(ctx context.Context, productID, sizeID, colorID, qty int64) error

	// DecreaseStockIfAvailable subtracts qty only when the row holds at
	// least that much. Returns false when the guard rejected the write.
	DecreaseStockIfAvailable(ctx context.Context, productID, sizeID, colorID, qty int64) (bool, error)
}
