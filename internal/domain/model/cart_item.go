package model

import "time"

// Price is snapshotted when the line is first added and is not
// refreshed by later adds or catalog price changes.
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_variant" json:"cart_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_variant" json:"product_id"`
	SizeID    int64     `gorm:"not null;uniqueIndex:idx_cart_variant" json:"size_id"`
	ColorID   int64     `gorm:"not null;uniqueIndex:idx_cart_variant" json:"color_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
