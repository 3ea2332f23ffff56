package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ListingCache caches rendered product listings. Nil means caching is
// disabled.
type ListingCache interface {
	GetList(ctx context.Context, key string, out interface{}) (bool, error)
	SetList(ctx context.Context, key string, v interface{}) error
	InvalidateLists(ctx context.Context) error
}

type ProductUsecase struct {
	tx            repo.TransactionManager
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
	cache         ListingCache
}

func NewProductUsecase(
	tx repo.TransactionManager,
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
	cache ListingCache,
) *ProductUsecase {
	return &ProductUsecase{
		tx:            tx,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		cache:         cache,
	}
}

type ListProductsInput struct {
	Page           int
	Limit          int
	Category       string
	ParentCategory string
	OnSale         *bool
}

type ProductListOutput struct {
	Products []repo.ProductListRow `json:"products"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	Limit    int                   `json:"limit"`
}

type ProductDetailOutput struct {
	model.Product
	CategoryName       string                 `json:"category_name"`
	ParentCategoryName string                 `json:"parent_category_name"`
	Inventory          []repo.InventoryDetail `json:"inventory"`
}

// List returns the public catalog page, served from Redis when a
// cached copy exists.
func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}

	key := listCacheKey(in)
	if u.cache != nil {
		var cached ProductListOutput
		hit, err := u.cache.GetList(ctx, key, &cached)
		if err == nil && hit {
			return cached, nil
		}
		// A broken cache degrades to the database.
	}

	rows, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:           in.Page,
		Limit:          in.Limit,
		Category:       in.Category,
		ParentCategory: in.ParentCategory,
		OnSale:         in.OnSale,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ProductListOutput{Products: rows, Total: total, Page: in.Page, Limit: in.Limit}

	if u.cache != nil {
		_ = u.cache.SetList(ctx, key, out)
	}
	return out, nil
}

// Detail returns a product with its category names and per-variant
// inventory.
func (u *ProductUsecase) Detail(ctx context.Context, productID int64) (ProductDetailOutput, error) {
	if productID <= 0 {
		return ProductDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ProductDetailOutput{Product: p}

	if p.CategoryID != nil {
		cat, err := u.categoryRepo.FindByID(ctx, *p.CategoryID)
		if err == nil {
			out.CategoryName = cat.Name
			if cat.ParentID != nil {
				if parent, err := u.categoryRepo.FindByID(ctx, *cat.ParentID); err == nil {
					out.ParentCategoryName = parent.Name
				}
			}
		}
	}

	inv, err := u.inventoryRepo.ListByProductID(ctx, productID)
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out.Inventory = inv

	return out, nil
}

type CategoryNode struct {
	model.Category
	Children []model.Category `json:"children"`
}

// Categories returns the category tree, parents first.
func (u *ProductUsecase) Categories(ctx context.Context) ([]CategoryNode, error) {
	cats, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []CategoryNode{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	nodes := make([]CategoryNode, 0)
	index := map[int64]int{}
	for _, c := range cats {
		if c.ParentID == nil {
			nodes = append(nodes, CategoryNode{Category: c, Children: []model.Category{}})
			index[c.ID] = len(nodes) - 1
		}
	}
	for _, c := range cats {
		if c.ParentID != nil {
			if i, ok := index[*c.ParentID]; ok {
				nodes[i].Children = append(nodes[i].Children, c)
			}
		}
	}

	return nodes, nil
}

type SaveProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	CategoryID  *int64
	IsOnSale    bool
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in SaveProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name and a positive price are required")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		IsOnSale:    in.IsOnSale,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateListings(ctx)
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in SaveProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name and a positive price are required")
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		IsOnSale:    in.IsOnSale,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateListings(ctx)

	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateListings(ctx)
	return nil
}

type VariantStockInput struct {
	SizeID        int64 `json:"size_id"`
	ColorID       int64 `json:"color_id"`
	StockQuantity int64 `json:"stock_quantity"`
}

// UpdateInventory sets absolute stock levels for a list of variants in
// one transaction.
func (u *ProductUsecase) UpdateInventory(ctx context.Context, productID int64, items []VariantStockInput) ([]repo.InventoryDetail, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if len(items) == 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "inventory items are required")
	}
	for _, it := range items {
		if it.SizeID <= 0 || it.ColorID <= 0 || it.StockQuantity < 0 {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid inventory item")
		}
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		for _, it := range items {
			if err := r.Inventory().UpsertStock(ctx, productID, it.SizeID, it.ColorID, it.StockQuantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidateListings(ctx)

	inv, err := u.inventoryRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return inv, nil
}

func (u *ProductUsecase) invalidateListings(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.InvalidateLists(ctx)
	}
}

func listCacheKey(in ListProductsInput) string {
	sale := "any"
	if in.OnSale != nil {
		sale = fmt.Sprintf("%t", *in.OnSale)
	}
	return fmt.Sprintf("products:p=%d:l=%d:c=%s:pc=%s:sale=%s",
		in.Page, in.Limit, in.Category, in.ParentCategory, sale)
}
