package domain

import "time"

// Order-related domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrOrderTerminal     = &Error{Code: ELIFECYCLE, Message: "Order is already in a final state"}
	ErrCancelNotAllowed  = &Error{Code: ELIFECYCLE, Message: "Order can no longer be cancelled"}
	ErrConfirmNotAllowed = &Error{Code: ELIFECYCLE, Message: "Order is not ready to be confirmed as received"}
)

// OrderStatus is a stage in the delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanCancel reports whether a user may still request cancellation.
// Cancellation is allowed while the kitchen has not handed the order to a
// courier: pending and preparing.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPending || s == OrderStatusPreparing
}

// CanConfirmReceipt reports whether a user may confirm delivery.
// Confirming an already-delivered order is an idempotent acknowledgement.
func (s OrderStatus) CanConfirmReceipt() bool {
	return s == OrderStatusConfirmed || s == OrderStatusOutForDelivery || s == OrderStatusDelivered
}

// OrderItem is an immutable line snapshot captured at purchase time.
type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// Order is a post-creation-immutable purchase record. The backend owns it;
// this engine only reads it and requests user-initiated transitions.
type Order struct {
	ID              string      `json:"_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus"`
	DeliveryAddress string      `json:"deliveryAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
