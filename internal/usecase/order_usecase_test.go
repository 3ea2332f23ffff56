package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubIDGen struct{ id string }

func (s *stubIDGen) NewID() string { return s.id }

func TestOrderUsecase_CheckoutFromCart_TwoLines(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "ord-0001"})

	ctx := context.Background()

	tx.repos.carts.On("FindByUserID", ctx, int64(7)).
		Return(model.Cart{ID: 3, UserID: 7}, nil)
	// Two lines: 2 x 10.00 + 1 x 25.00 = 45.00.
	tx.repos.cartItems.On("ListByCartID", ctx, int64(3)).
		Return([]model.CartItem{
			{ID: 1, CartID: 3, ProductID: 10, SizeID: 2, ColorID: 5, Quantity: 2, Price: 1000},
			{ID: 2, CartID: 3, ProductID: 11, SizeID: 1, ColorID: 4, Quantity: 1, Price: 2500},
		}, nil)

	tx.repos.orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == "ord-0001" &&
			o.UserID == 7 &&
			o.Status == model.OrderStatusPending &&
			o.TotalAmount == 4500
	})).Return(int64(100), nil)

	tx.repos.orderItems.On("CreateBulk", ctx, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].Price == 1000 && items[1].Quantity == 1
	})).Return(nil)

	tx.repos.inventory.On("DecreaseStockIfAvailable", ctx, int64(10), int64(2), int64(5), int64(2)).
		Return(true, nil)
	tx.repos.inventory.On("DecreaseStockIfAvailable", ctx, int64(11), int64(1), int64(4), int64(1)).
		Return(true, nil)

	tx.repos.carts.On("ClearItems", ctx, int64(3)).Return(nil)

	tx.repos.orders.On("FindByID", ctx, int64(100)).
		Return(model.Order{
			ID: 100, OrderNumber: "ord-0001", UserID: 7,
			Status: model.OrderStatusPending, TotalAmount: 4500,
		}, nil)
	tx.repos.orderItems.On("ListDetailByOrderID", ctx, int64(100)).
		Return([]repo.OrderItemDetail{
			{ID: 1, ProductID: 10, Quantity: 2, Price: 1000},
			{ID: 2, ProductID: 11, Quantity: 1, Price: 2500},
		}, nil)

	out, err := uc.CheckoutFromCart(ctx, 7, CheckoutInput{
		ShippingAddress: "1 Main St",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord-0001", out.OrderNumber)
	assert.Equal(t, int64(4500), out.TotalAmount)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	assert.Len(t, out.Items, 2)

	tx.repos.inventory.AssertExpectations(t)
	tx.repos.carts.AssertExpectations(t)
}

func TestOrderUsecase_CheckoutFromCart_NoCart(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	ctx := context.Background()

	tx.repos.carts.On("FindByUserID", ctx, int64(7)).
		Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.CheckoutFromCart(ctx, 7, CheckoutInput{ShippingAddress: "a", PaymentMethod: "card"})
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	tx.repos.orders.AssertNotCalled(t, "Create")
}

func TestOrderUsecase_CheckoutFromCart_EmptyCart(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	ctx := context.Background()

	tx.repos.carts.On("FindByUserID", ctx, int64(7)).
		Return(model.Cart{ID: 3, UserID: 7}, nil)
	tx.repos.cartItems.On("ListByCartID", ctx, int64(3)).
		Return([]model.CartItem{}, nil)

	_, err := uc.CheckoutFromCart(ctx, 7, CheckoutInput{ShippingAddress: "a", PaymentMethod: "card"})
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "cart is empty", he.Message)
	tx.repos.orders.AssertNotCalled(t, "Create")
}

func TestOrderUsecase_CheckoutFromCart_InsufficientStock(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "ord-0002"})

	ctx := context.Background()

	tx.repos.carts.On("FindByUserID", ctx, int64(7)).
		Return(model.Cart{ID: 3, UserID: 7}, nil)
	tx.repos.cartItems.On("ListByCartID", ctx, int64(3)).
		Return([]model.CartItem{
			{ID: 1, CartID: 3, ProductID: 10, SizeID: 2, ColorID: 5, Quantity: 50, Price: 1500},
		}, nil)
	tx.repos.orders.On("Create", ctx, mock.Anything).Return(int64(100), nil)
	tx.repos.orderItems.On("CreateBulk", ctx, int64(100), mock.Anything).Return(nil)
	tx.repos.inventory.On("DecreaseStockIfAvailable", ctx, int64(10), int64(2), int64(5), int64(50)).
		Return(false, nil)

	_, err := uc.CheckoutFromCart(ctx, 7, CheckoutInput{ShippingAddress: "a", PaymentMethod: "card"})
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "insufficient stock", he.Message)

	// The guard failed, so the cart must survive the rolled-back tx.
	tx.repos.carts.AssertNotCalled(t, "ClearItems")
}

func TestOrderUsecase_CreateOrder_Validation(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	cases := []struct {
		name string
		in   CreateOrderInput
	}{
		{"zero total", CreateOrderInput{ShippingAddress: "a", PaymentMethod: "card", Items: []OrderItemInput{{ProductID: 1, SizeID: 1, ColorID: 1, Quantity: 1}}}},
		{"no address", CreateOrderInput{TotalAmount: 100, PaymentMethod: "card", Items: []OrderItemInput{{ProductID: 1, SizeID: 1, ColorID: 1, Quantity: 1}}}},
		{"no payment", CreateOrderInput{TotalAmount: 100, ShippingAddress: "a", Items: []OrderItemInput{{ProductID: 1, SizeID: 1, ColorID: 1, Quantity: 1}}}},
		{"no items", CreateOrderInput{TotalAmount: 100, ShippingAddress: "a", PaymentMethod: "card"}},
		{"bad item qty", CreateOrderInput{TotalAmount: 100, ShippingAddress: "a", PaymentMethod: "card", Items: []OrderItemInput{{ProductID: 1, SizeID: 1, ColorID: 1, Quantity: 0}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateOrder(context.Background(), 7, tc.in)
			require.Error(t, err)

			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}

	tx.repos.orders.AssertNotCalled(t, "Create")
}

func TestOrderUsecase_ListMyOrders_Pagination(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	ctx := context.Background()

	tx.repos.orders.On("ListByUserID", ctx, int64(7), 2, 10, "").
		Return([]model.Order{
			{ID: 11, UserID: 7, Status: model.OrderStatusPaid},
		}, int64(11), nil)
	tx.repos.orderItems.On("ListDetailByOrderID", ctx, int64(11)).
		Return([]repo.OrderItemDetail{}, nil)

	out, err := uc.ListMyOrders(ctx, 7, 2, 10, "")
	require.NoError(t, err)

	assert.Len(t, out.Orders, 1)
	assert.Equal(t, 2, out.Pagination.Current)
	assert.Equal(t, 2, out.Pagination.Total)
	assert.Equal(t, int64(11), out.Pagination.TotalOrders)
}

func TestOrderUsecase_ListMyOrders_InvalidStatus(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	_, err := uc.ListMyOrders(context.Background(), 7, 1, 10, "teleported")
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderUsecase_GetOrderDetail_Ownership(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	ctx := context.Background()

	tx.repos.orders.On("FindByID", ctx, int64(100)).
		Return(model.Order{ID: 100, UserID: 7}, nil)

	_, err := uc.GetOrderDetail(ctx, 8, model.RoleCustomer, 100)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
}

func TestOrderUsecase_GetOrderDetail_AdminMayReadAny(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	ctx := context.Background()

	tx.repos.orders.On("FindByID", ctx, int64(100)).
		Return(model.Order{ID: 100, UserID: 7, TotalAmount: 4500}, nil)
	tx.repos.orderItems.On("ListDetailByOrderID", ctx, int64(100)).
		Return([]repo.OrderItemDetail{}, nil)

	out, err := uc.GetOrderDetail(ctx, 8, model.RoleAdmin, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), out.TotalAmount)
}

func TestOrderUsecase_GetOrderDetail_NotFound(t *testing.T) {
	tx := newFakeTxManager()
	uc := NewOrderUsecase(tx, &stubIDGen{id: "x"})

	ctx := context.Background()

	tx.repos.orders.On("FindByID", ctx, int64(404)).
		Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetOrderDetail(ctx, 7, model.RoleCustomer, 404)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
