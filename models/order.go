package models

import "time"

// OrderStatus is deliberately an open string: the server may know statuses
// this client does not, and unrecognized values must survive untouched.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusApproved OrderStatus = "APPROVED"
	OrderStatusRejected OrderStatus = "REJECTED"
)

// Known reports whether the status is one this client recognizes
func (s OrderStatus) Known() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected:
		return true
	}
	return false
}

// OrderItem is a single line of an order as returned by the server
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order represents a placed order. Same ownership rules as Product:
// server-owned, snapshot-replaced, never patched locally.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Status      OrderStatus `json:"status"`
	OrderDate   time.Time   `json:"orderDate"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
}

// OrderLineRequest is one line of a new order submission
type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
