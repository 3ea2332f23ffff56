package repository

import "context"

// TxRepos is the repository set bound to one open transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Inventory() InventoryRepository
	Products() ProductRepository
}

// TransactionManager hides begin/commit/rollback from usecases: fn
// either commits as a whole or rolls back as a whole.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
