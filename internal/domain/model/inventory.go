package model

import "time"

// Inventory tracks stock per (product, size, color) variant.
type Inventory struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     int64     `gorm:"not null;uniqueIndex:idx_inventory_variant" json:"product_id"`
	SizeID        int64     `gorm:"not null;uniqueIndex:idx_inventory_variant" json:"size_id"`
	ColorID       int64     `gorm:"not null;uniqueIndex:idx_inventory_variant" json:"color_id"`
	StockQuantity int64     `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
