package model

type Size struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
}

type Color struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
	HexCode string `gorm:"type:varchar(7)" json:"hex_code"`
}
