package model

import "time"

// Immutable after creation. Price is copied from the cart line or the
// request payload at order-creation time, never recomputed.
type OrderItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index" json:"order_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	SizeID    int64     `gorm:"not null" json:"size_id"`
	ColorID   int64     `gorm:"not null" json:"color_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
