package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductListQuery struct {
	Page           int
	Limit          int
	Category       string
	ParentCategory string
	OnSale         *bool
}

// ProductListRow is a product joined with its category names for
// listing responses.
type ProductListRow struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Price              int64  `json:"price"`
	ImageURL           string `json:"image_url"`
	IsOnSale           bool   `json:"is_on_sale"`
	CategoryID         *int64 `json:"category_id"`
	CategoryName       string `json:"category_name"`
	ParentCategoryName string `json:"parent_category_name"`
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]ProductListRow, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
}
