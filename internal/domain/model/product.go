package model

import "time"

// Price is stored in minor currency units (4500 = 45.00).
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	ImageURL    string    `gorm:"type:varchar(512)" json:"image_url"`
	CategoryID  *int64    `gorm:"index" json:"category_id"`
	IsOnSale    bool      `gorm:"not null;default:false" json:"is_on_sale"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
