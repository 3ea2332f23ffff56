package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order

	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, page, limit int, status string) ([]model.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	q := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]repo.AdminOrderRow, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 10
	}

	count := r.db.WithContext(ctx).Model(&model.Order{})
	if f.Status != "" {
		count = count.Where("status = ?", f.Status)
	}

	var total int64
	if err := count.Count(&total).Error; err != nil {
		return []repo.AdminOrderRow{}, 0, err
	}

	type adminRow struct {
		model.Order
		UserEmail string
		UserName  string
		ItemCount int64
	}

	q := r.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.*, u.email AS user_email, u.full_name AS user_name,
			COUNT(oi.id) AS item_count`).
		Joins("LEFT JOIN users u ON u.id = o.user_id").
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id")
	if f.Status != "" {
		q = q.Where("o.status = ?", f.Status)
	}

	var raw []adminRow
	offset := (f.Page - 1) * f.Limit
	err := q.Group("o.id, u.id").
		Order("o.created_at desc").
		Limit(f.Limit).
		Offset(offset).
		Scan(&raw).Error
	if err != nil {
		return []repo.AdminOrderRow{}, 0, err
	}

	rows := make([]repo.AdminOrderRow, 0, len(raw))
	for _, a := range raw {
		rows = append(rows, repo.AdminOrderRow{
			Order:     a.Order,
			UserEmail: a.UserEmail,
			UserName:  a.UserName,
			ItemCount: a.ItemCount,
		})
	}

	return rows, total, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
