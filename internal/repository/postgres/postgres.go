package postgres

import (
	"context"
	"database/sql"

	"garmentloop-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.StockRepository
	repository.RentalRepository
	repository.OrderRepository
	repository.CartRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ProductRepository:      NewProductRepository(db),
		StockRepository:        NewStockRepository(db),
		RentalRepository:       NewRentalRepository(db),
		OrderRepository:        NewOrderRepository(db),
		CartRepository:         NewCartRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// execer is satisfied by both *sql.DB and *sql.Tx so stock and cart
// statements can run standalone or inside a coordinating transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
