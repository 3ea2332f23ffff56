package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) ListByProductID(ctx context.Context, productID int64) ([]repo.InventoryDetail, error) {
	var rows []repo.InventoryDetail

	err := r.db.WithContext(ctx).
		Table("inventories AS i").
		Select(`i.id, i.product_id, i.stock_quantity,
			i.size_id, s.name AS size_name,
			i.color_id, c.name AS color_name, c.hex_code AS color_hex`).
		Joins("LEFT JOIN sizes s ON s.id = i.size_id").
		Joins("LEFT JOIN colors c ON c.id = i.color_id").
		Where("i.product_id = ?", productID).
		Order("s.name, c.name").
		Scan(&rows).Error

	if err != nil {
		return []repo.InventoryDetail{}, err
	}
	return rows, nil
}

// UpsertStock sets the absolute stock level for a variant.
func (r *InventoryGormRepository) UpsertStock(ctx context.Context, productID, sizeID, colorID, qty int64) error {
	row := model.Inventory{
		ProductID:     productID,
		SizeID:        sizeID,
		ColorID:       colorID,
		StockQuantity: qty,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "size_id"}, {Name: "color_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"stock_quantity": qty}),
		}).
		Create(&row).Error
}

// DecreaseStockIfAvailable is a guarded decrement: the WHERE clause
// keeps stock from going negative, and a zero RowsAffected means the
// variant row is missing or short.
func (r *InventoryGormRepository) DecreaseStockIfAvailable(ctx context.Context, productID, sizeID, colorID, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("product_id = ? AND size_id = ? AND color_id = ? AND stock_quantity >= ?",
			productID, sizeID, colorID, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
