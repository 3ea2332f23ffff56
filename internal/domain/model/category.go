package model

import "time"

// Category is a two-level tree: top-level rows have a nil ParentID.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *int64    `gorm:"index" json:"parent_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
