package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order. The wire values are
// the Portuguese labels the dashboard renders directly.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pendente"
	OrderConfirmed OrderStatus = "confirmado"
	OrderCancelled OrderStatus = "cancelado"
	OrderCompleted OrderStatus = "completado"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCancelled, OrderCompleted:
		return true
	}
	return false
}

// OrderItem is a single line of an order.
type OrderItem struct {
	Item  string  `json:"item" bson:"item"`
	Qty   int     `json:"qty" bson:"qty"`
	Price float64 `json:"price" bson:"price"`
}

// Order is a customer order as shown on the dashboard list view.
type Order struct {
	ID            int         `json:"id" bson:"_id"`
	CustomerName  string      `json:"customerName" bson:"customer_name"`
	CustomerPhone string      `json:"customerPhone" bson:"customer_phone"`
	Status        OrderStatus `json:"status" bson:"status"`
	Items         []OrderItem `json:"items" bson:"items"`
	CreatedAt     time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updated_at"`
}

// EntityID implements the reconciled-collection key.
func (o Order) EntityID() int { return o.ID }

// Total is the order value across all items.
func (o Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += float64(it.Qty) * it.Price
	}
	return sum
}
