package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is a placed storefront order.
type Order struct {
	ID         uuid.UUID   `json:"id"`
	UserID     string      `json:"user_id"`
	Email      string      `json:"email,omitempty"` // populated on admin listings
	Status     string      `json:"status"`          // "pending", "paid", "shipped", "delivered", "cancelled"
	Items      []OrderItem `json:"items"`
	TotalCents int         `json:"total_cents"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	PriceCents int       `json:"price_cents"`
}

// ItemCount returns the total quantity across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
