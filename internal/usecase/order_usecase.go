package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// IDGenerator produces order numbers (UUIDs in production).
type IDGenerator interface {
	NewID() string
}

type OrderUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
}

func NewOrderUsecase(tx repo.TransactionManager, idGen IDGenerator) *OrderUsecase {
	return &OrderUsecase{tx: tx, idGen: idGen}
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	SizeID    int64 `json:"size_id"`
	ColorID   int64 `json:"color_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

type CreateOrderInput struct {
	TotalAmount     int64
	ShippingAddress string
	PaymentMethod   string
	Items           []OrderItemInput
}

type CheckoutInput struct {
	ShippingAddress string
	PaymentMethod   string
}

type OrderResponse struct {
	ID              int64                  `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	UserID          int64                  `json:"user_id"`
	Status          string                 `json:"status"`
	TotalAmount     int64                  `json:"total_amount"`
	ShippingAddress string                 `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []repo.OrderItemDetail `json:"items"`
}

// Pagination mirrors the shape the web client expects.
type Pagination struct {
	Current     int   `json:"current"`
	Total       int   `json:"total"`
	Count       int   `json:"count"`
	TotalOrders int64 `json:"total_orders"`
}

type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Pagination Pagination      `json:"pagination"`
}

// CreateOrder places an order from an explicit item list. Prices come
// from the payload, not the catalog.
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.TotalAmount <= 0 || strings.TrimSpace(in.ShippingAddress) == "" ||
		strings.TrimSpace(in.PaymentMethod) == "" || len(in.Items) == 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "missing required order fields")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.SizeID <= 0 || it.ColorID <= 0 || it.Quantity < 1 {
			return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid order item")
		}
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			SizeID:    it.SizeID,
			ColorID:   it.ColorID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		out, err = u.placeOrder(ctx, r, userID, in.TotalAmount, in.ShippingAddress, in.PaymentMethod, items, nil)
		return err
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// CheckoutFromCart converts the user's cart into an order: the total
// is computed from the snapshotted line prices, inventory is
// decremented per variant, and the cart is emptied, all in one
// transaction.
func (u *OrderUsecase) CheckoutFromCart(ctx context.Context, userID int64, in CheckoutInput) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" || strings.TrimSpace(in.PaymentMethod) == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "shipping address and payment method are required")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		var total int64
		items := make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			total += ci.Price * ci.Quantity
			items = append(items, model.OrderItem{
				ProductID: ci.ProductID,
				SizeID:    ci.SizeID,
				ColorID:   ci.ColorID,
				Quantity:  ci.Quantity,
				Price:     ci.Price,
			})
		}

		cartID := cart.ID
		out, err = u.placeOrder(ctx, r, userID, total, in.ShippingAddress, in.PaymentMethod, items, &cartID)
		return err
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// placeOrder runs inside an open transaction: header, lines, guarded
// inventory decrements, and the optional cart purge commit or roll
// back together.
func (u *OrderUsecase) placeOrder(ctx context.Context, r repo.TxRepos, userID, total int64, address, payment string, items []model.OrderItem, cartID *int64) (OrderResponse, error) {
	orderID, err := r.Orders().Create(ctx, model.Order{
		OrderNumber:     u.idGen.NewID(),
		UserID:          userID,
		Status:          model.OrderStatusPending,
		TotalAmount:     total,
		ShippingAddress: address,
		PaymentMethod:   payment,
	})
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	for _, it := range items {
		ok, err := r.Inventory().DecreaseStockIfAvailable(ctx, it.ProductID, it.SizeID, it.ColorID, it.Quantity)
		if err != nil {
			return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "insufficient stock")
		}
	}

	if cartID != nil {
		if err := r.Carts().ClearItems(ctx, *cartID); err != nil {
			return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return u.hydrate(ctx, r, orderID)
}

// ListMyOrders pages through the caller's orders, newest first.
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page, limit int, status string) (OrderListResponse, error) {
	if userID <= 0 {
		return OrderListResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if status != "" && !model.ValidOrderStatus(status) {
		return OrderListResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	var out OrderListResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit, status)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListDetailByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderResponse(o, items))
		}

		out = OrderListResponse{
			Orders:     outs,
			Pagination: buildPagination(page, limit, len(outs), total),
		}
		return nil
	})

	if err != nil {
		return OrderListResponse{}, err
	}
	return out, nil
}

// GetOrderDetail returns one order; only the owner or an admin may
// read it.
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.UserID != userID && role != model.RoleAdmin {
			return NewHTTPError(http.StatusForbidden, "not authorized to view this order")
		}

		items, err := r.OrderItems().ListDetailByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderResponse(o, items)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

func (u *OrderUsecase) hydrate(ctx context.Context, r repo.TxRepos, orderID int64) (OrderResponse, error) {
	o, err := r.Orders().FindByID(ctx, orderID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := r.OrderItems().ListDetailByOrderID(ctx, orderID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toOrderResponse(o, items), nil
}

func toOrderResponse(o model.Order, items []repo.OrderItemDetail) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

func buildPagination(page, limit, count int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current:     page,
		Total:       pages,
		Count:       count,
		TotalOrders: total,
	}
}
