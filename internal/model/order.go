package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Fulfillment order. Cancelled sits outside of it
var statusFlow = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered}

func (s OrderStatus) Valid() bool {
	return s == OrderCancelled || slices.Contains(statusFlow, s)
}

// Terminal reports whether no further status changes are allowed
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether an order in status s may be moved to next.
// Orders only move forward along the fulfillment flow (steps may be skipped),
// cancellation is only possible before shipping and terminal states never change.
// Setting the current status again is a no-op and always allowed
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}

	if s == next {
		return true
	}

	if s.Terminal() {
		return false
	}

	if next == OrderCancelled {
		return s == OrderPending || s == OrderProcessing
	}

	return slices.Index(statusFlow, next) > slices.Index(statusFlow, s)
}

var PaymentMethods = []string{"credit_card", "debit_card", "paypal", "cash_on_delivery"}

// OrderItem is a snapshot of a product taken at checkout, not a live reference
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderTotal sums price * quantity across items
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}

	return total
}
