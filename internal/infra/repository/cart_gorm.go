package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartGormRepository implements both repo.CartRepository and
// repo.CartItemRepository.
type CartGormRepository struct {
	db *gorm.DB
}

func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// GetOrCreateByUserID returns the user's cart, inserting an empty one
// on first access.
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&cart).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		newCart := model.Cart{UserID: userID}
		if err := tx.Create(&newCart).Error; err != nil {
			// Lost a create race on the unique user_id index.
			retryErr := tx.Where("user_id = ?", userID).First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) ClearItems(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}

func (r *CartGormRepository) Count(ctx context.Context, userID int64) (repo.CartCount, error) {
	var count repo.CartCount

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("COUNT(cart_items.id) AS item_count, COALESCE(SUM(cart_items.quantity), 0) AS total_quantity").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("carts.user_id = ?", userID).
		Scan(&count).Error

	if err != nil {
		return repo.CartCount{}, err
	}
	return count, nil
}

func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// ListDetailByCartID joins each line with product, size and color
// names plus the variant's current stock.
func (r *CartGormRepository) ListDetailByCartID(ctx context.Context, cartID int64) ([]repo.CartItemDetail, error) {
	var rows []repo.CartItemDetail

	err := r.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select(`ci.id, ci.product_id, p.name AS product_name, p.image_url,
			ci.size_id, s.name AS size_name,
			ci.color_id, c.name AS color_name, c.hex_code AS color_hex,
			ci.quantity, ci.price,
			COALESCE(inv.stock_quantity, 0) AS available_stock`).
		Joins("LEFT JOIN products p ON p.id = ci.product_id").
		Joins("LEFT JOIN sizes s ON s.id = ci.size_id").
		Joins("LEFT JOIN colors c ON c.id = ci.color_id").
		Joins(`LEFT JOIN inventories inv ON inv.product_id = ci.product_id
			AND inv.size_id = ci.size_id AND inv.color_id = ci.color_id`).
		Where("ci.cart_id = ?", cartID).
		Order("ci.id asc").
		Scan(&rows).Error

	if err != nil {
		return []repo.CartItemDetail{}, err
	}
	return rows, nil
}

// UpsertByVariant adds quantity to an existing (product,size,color)
// line, or inserts a new line with the given price snapshot. An
// existing line keeps its original price.
func (r *CartGormRepository) UpsertByVariant(ctx context.Context, cartID, productID, sizeID, colorID, addQty, price int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ? AND size_id = ? AND color_id = ?",
				cartID, productID, sizeID, colorID).
			First(&item).Error

		if err == nil {
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", item.Quantity+addQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newItem := model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			SizeID:    sizeID,
			ColorID:   colorID,
			Quantity:  addQty,
			Price:     price,
		}
		return tx.Create(&newItem).Error
	})
}

func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, cartItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartGormRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ?", cartItemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

func (r *CartGormRepository) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", cartItemID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}
