package ports

import (
	"context"

	"github.com/painelfacil/painel-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	// Create inserts the order and assigns its id.
	Create(ctx context.Context, o *domain.Order) error
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int) error
}

type CreateOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []domain.OrderItem
}

type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	// UpdateStatus moves the order to the given status and pushes the
	// updated record to subscribers.
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
}
