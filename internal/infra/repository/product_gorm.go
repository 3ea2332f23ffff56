package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]repo.ProductListRow, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 10
	}

	base := r.db.WithContext(ctx).
		Table("products AS p").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN categories parent ON parent.id = c.parent_id")

	// Category filters match the leaf name, the parent name, or both.
	switch {
	case q.ParentCategory != "" && q.Category != "":
		base = base.Where("parent.name ILIKE ? AND c.name ILIKE ?",
			"%"+q.ParentCategory+"%", "%"+q.Category+"%")
	case q.ParentCategory != "":
		base = base.Where("parent.name ILIKE ?", "%"+q.ParentCategory+"%")
	case q.Category != "":
		base = base.Where("c.name ILIKE ? OR parent.name ILIKE ?",
			"%"+q.Category+"%", "%"+q.Category+"%")
	}

	if q.OnSale != nil {
		base = base.Where("p.is_on_sale = ?", *q.OnSale)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return []repo.ProductListRow{}, 0, err
	}

	var rows []repo.ProductListRow
	offset := (q.Page - 1) * q.Limit
	err := base.
		Select(`p.id, p.name, p.description, p.price, p.image_url, p.is_on_sale,
			p.category_id, c.name AS category_name, parent.name AS parent_category_name`).
		Order("p.created_at desc").
		Limit(q.Limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return []repo.ProductListRow{}, 0, err
	}

	return rows, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"image_url":   p.ImageURL,
			"category_id": p.CategoryID,
			"is_on_sale":  p.IsOnSale,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete removes the product and its dependent rows.
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Inventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category

	if err := r.db.WithContext(ctx).Order("id asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}
