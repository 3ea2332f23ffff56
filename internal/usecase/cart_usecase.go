package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "app/internal/repository"
)

// CartUsecase owns the /cart operations. Every mutation returns the
// full hydrated cart so the client never renders stale state.
type CartUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
	}
}

type CartResponse struct {
	CartID int64                 `json:"cart_id"`
	Items  []repo.CartItemDetail `json:"items"`
	Total  int64                 `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	SizeID    int64
	ColorID   int64
	Quantity  int64
}

// GetCart returns the user's cart, creating an empty one on first
// access.
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildResponse(ctx, u.cartItemRepo, cart.ID)
}

// AddToCart adds a (product, size, color) line, or increments the
// quantity of an existing line. The price snapshot is taken on the
// first add only and is never refreshed afterwards.
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 || in.SizeID <= 0 || in.ColorID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product_id, size_id and color_id are required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	var out CartResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().GetOrCreateByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		p, err := r.Products().FindByID(ctx, in.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.CartItems().UpsertByVariant(ctx, cart.ID, in.ProductID, in.SizeID, in.ColorID, in.Quantity, p.Price); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = u.buildResponse(ctx, r.CartItems(), cart.ID)
		return err
	})

	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// UpdateItem sets a line's quantity; zero or less deletes the line.
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, quantity int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out CartResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := u.checkItemAccess(ctx, r, cartItemID, userID); err != nil {
			return err
		}

		var err error
		if quantity <= 0 {
			err = r.CartItems().DeleteByID(ctx, cartItemID)
		} else {
			err = r.CartItems().UpdateQuantity(ctx, cartItemID, quantity)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = u.buildResponse(ctx, r.CartItems(), cart.ID)
		return err
	})

	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out CartResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := u.checkItemAccess(ctx, r, cartItemID, userID); err != nil {
			return err
		}

		if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "cart item not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = u.buildResponse(ctx, r.CartItems(), cart.ID)
		return err
	})

	if err != nil {
		return CartResponse{}, err
	}
	return out, nil
}

// ClearCart deletes every line. A user without a cart is a no-op, not
// an error.
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{Items: []repo.CartItemDetail{}}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CartResponse{CartID: cart.ID, Items: []repo.CartItemDetail{}}, nil
}

// Count feeds the cart badge; 0/0 when the user has no cart yet.
func (u *CartUsecase) Count(ctx context.Context, userID int64) (repo.CartCount, error) {
	if userID <= 0 {
		return repo.CartCount{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count, err := u.cartRepo.Count(ctx, userID)
	if err != nil {
		return repo.CartCount{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return count, nil
}

// checkItemAccess distinguishes a missing line (404) from a line in
// someone else's cart (403).
func (u *CartUsecase) checkItemAccess(ctx context.Context, r repo.TxRepos, cartItemID, userID int64) error {
	if _, err := r.CartItems().FindByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	owned, err := r.CartItems().IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusForbidden, "cart item belongs to another user")
	}
	return nil
}

func (u *CartUsecase) buildResponse(ctx context.Context, items repo.CartItemRepository, cartID int64) (CartResponse, error) {
	rows, err := items.ListDetailByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var total int64
	for _, it := range rows {
		total += it.Price * it.Quantity
	}

	return CartResponse{CartID: cartID, Items: rows, Total: total}, nil
}
