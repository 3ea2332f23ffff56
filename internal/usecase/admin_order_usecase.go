package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminOrderListItem struct {
	OrderResponse
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	ItemCount int64  `json:"item_count"`
}

type AdminOrderListResponse struct {
	Orders     []AdminOrderListItem `json:"orders"`
	Pagination Pagination           `json:"pagination"`
}

// List pages through all users' orders with line counts.
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (AdminOrderListResponse, error) {
	if f.Status != "" && !model.ValidOrderStatus(f.Status) {
		return AdminOrderListResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}

	var out AdminOrderListResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]AdminOrderListItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, AdminOrderListItem{
				OrderResponse: toOrderResponse(row.Order, nil),
				UserEmail:     row.UserEmail,
				UserName:      row.UserName,
				ItemCount:     row.ItemCount,
			})
		}

		out = AdminOrderListResponse{
			Orders:     items,
			Pagination: buildPagination(f.Page, f.Limit, len(items), total),
		}
		return nil
	})

	if err != nil {
		return AdminOrderListResponse{}, err
	}
	return out, nil
}

// UpdateStatus sets the order status. Membership in the enum is the
// only check; any status may follow any other.
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (OrderResponse, error) {
	if orderID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if !model.ValidOrderStatus(status) {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
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
