package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) ListDetailByOrderID(ctx context.Context, orderID int64) ([]repo.OrderItemDetail, error) {
	var rows []repo.OrderItemDetail

	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.id, oi.product_id, p.name AS product_name, p.image_url,
			oi.size_id, s.name AS size_name,
			oi.color_id, c.name AS color_name, c.hex_code AS color_hex,
			oi.quantity, oi.price`).
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Joins("LEFT JOIN sizes s ON s.id = oi.size_id").
		Joins("LEFT JOIN colors c ON c.id = oi.color_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.OrderItemDetail{}, err
	}
	return rows, nil
}
