package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process ListingCache for tests.
type memoryCache struct {
	entries     map[string][]byte
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetList(_ context.Context, key string, out interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *memoryCache) SetList(_ context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) InvalidateLists(_ context.Context) error {
	c.entries = map[string][]byte{}
	c.invalidated++
	return nil
}

func newProductUsecaseForTest(cache ListingCache) (*ProductUsecase, *fakeTxManager) {
	tx := newFakeTxManager()
	uc := NewProductUsecase(tx, tx.repos.products, &mockCategoryRepo{}, tx.repos.inventory, cache)
	return uc, tx
}

func TestProductUsecase_List_CachesSecondRead(t *testing.T) {
	cache := newMemoryCache()
	uc, tx := newProductUsecaseForTest(cache)

	ctx := context.Background()

	tx.repos.products.On("List", ctx, repo.ProductListQuery{Page: 1, Limit: 10}).
		Return([]repo.ProductListRow{{ID: 1, Name: "Crew Neck Tee", Price: 1500}}, int64(1), nil).
		Once()

	first, err := uc.List(ctx, ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, first.Products, 1)

	// Second read must come from the cache; the mock only allows one
	// database hit.
	second, err := uc.List(ctx, ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	tx.repos.products.AssertExpectations(t)
}

func TestProductUsecase_List_DistinctFiltersDistinctKeys(t *testing.T) {
	cache := newMemoryCache()
	uc, tx := newProductUsecaseForTest(cache)

	ctx := context.Background()

	tx.repos.products.On("List", ctx, repo.ProductListQuery{Page: 1, Limit: 10}).
		Return([]repo.ProductListRow{{ID: 1}}, int64(1), nil).Once()
	tx.repos.products.On("List", ctx, repo.ProductListQuery{Page: 1, Limit: 10, Category: "Tops"}).
		Return([]repo.ProductListRow{{ID: 2}}, int64(1), nil).Once()

	all, err := uc.List(ctx, ListProductsInput{})
	require.NoError(t, err)
	tops, err := uc.List(ctx, ListProductsInput{Category: "Tops"})
	require.NoError(t, err)

	assert.NotEqual(t, all.Products[0].ID, tops.Products[0].ID)
}

func TestProductUsecase_CreateProduct_InvalidatesCache(t *testing.T) {
	cache := newMemoryCache()
	uc, tx := newProductUsecaseForTest(cache)

	ctx := context.Background()

	tx.repos.products.On("Create", ctx, mock.AnythingOfType("model.Product")).
		Return(model.Product{ID: 9, Name: "New", Price: 2000}, nil)

	_, err := uc.CreateProduct(ctx, SaveProductInput{Name: "New", Price: 2000})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)
}

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	uc, tx := newProductUsecaseForTest(nil)

	_, err := uc.CreateProduct(context.Background(), SaveProductInput{Name: " ", Price: 100})
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = uc.CreateProduct(context.Background(), SaveProductInput{Name: "x", Price: 0})
	require.Error(t, err)

	tx.repos.products.AssertNotCalled(t, "Create")
}

func TestProductUsecase_Detail_NotFound(t *testing.T) {
	uc, tx := newProductUsecaseForTest(nil)

	ctx := context.Background()

	tx.repos.products.On("FindByID", ctx, int64(404)).
		Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Detail(ctx, 404)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestProductUsecase_UpdateInventory(t *testing.T) {
	uc, tx := newProductUsecaseForTest(nil)

	ctx := context.Background()

	tx.repos.products.On("FindByID", ctx, int64(10)).
		Return(model.Product{ID: 10, Name: "Tee", Price: 1500}, nil)
	tx.repos.inventory.On("UpsertStock", ctx, int64(10), int64(1), int64(2), int64(30)).Return(nil)
	tx.repos.inventory.On("UpsertStock", ctx, int64(10), int64(2), int64(2), int64(15)).Return(nil)
	tx.repos.inventory.On("ListByProductID", ctx, int64(10)).
		Return([]repo.InventoryDetail{
			{ProductID: 10, SizeID: 1, ColorID: 2, StockQuantity: 30},
			{ProductID: 10, SizeID: 2, ColorID: 2, StockQuantity: 15},
		}, nil)

	out, err := uc.UpdateInventory(ctx, 10, []VariantStockInput{
		{SizeID: 1, ColorID: 2, StockQuantity: 30},
		{SizeID: 2, ColorID: 2, StockQuantity: 15},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	tx.repos.inventory.AssertExpectations(t)
}

func TestProductUsecase_UpdateInventory_RejectsNegativeStock(t *testing.T) {
	uc, tx := newProductUsecaseForTest(nil)

	_, err := uc.UpdateInventory(context.Background(), 10, []VariantStockInput{
		{SizeID: 1, ColorID: 2, StockQuantity: -5},
	})
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.repos.inventory.AssertNotCalled(t, "UpsertStock")
}

func TestProductUsecase_Categories_Tree(t *testing.T) {
	tx := newFakeTxManager()
	cats := &mockCategoryRepo{}
	uc := NewProductUsecase(tx, tx.repos.products, cats, tx.repos.inventory, nil)

	ctx := context.Background()

	mensID := int64(1)
	cats.On("List", ctx).Return([]model.Category{
		{ID: 1, Name: "Men"},
		{ID: 2, Name: "Women"},
		{ID: 3, Name: "Tops", ParentID: &mensID},
	}, nil)

	out, err := uc.Categories(ctx)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, "Men", out[0].Name)
	require.Len(t, out[0].Children, 1)
	assert.Equal(t, "Tops", out[0].Children[0].Name)
	assert.Empty(t, out[1].Children)
}
