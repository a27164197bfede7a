package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Status has no transition table; these are the conventional values, not an
// enforced enumeration.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID                int64   `json:"id"`
	UserID            int64   `json:"userId"`
	TotalAmount       float64 `json:"totalAmount"`
	Status            string  `json:"status"`
	PaymentID         *string `json:"paymentId"`
	RazorpayOrderID   *string `json:"razorpayOrderId"`
	RazorpaySignature *string `json:"razorpaySignature"`
	PaymentMethod     string  `json:"paymentMethod"`
	AddressSnapshot
	Items     []OrderItem `json:"items,omitempty"`
	User      *User       `json:"user,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID        int64    `json:"id"`
	OrderID   int64    `json:"orderId"`
	ProductID int64    `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // snapshot of the product price at order time
	Product   *Product `json:"product,omitempty"`
}

// AddressSnapshot is the shipping address copied onto an order at creation.
// It is never synced back to the user's live profile.
type AddressSnapshot struct {
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postalCode"`
	Country      *string `json:"country"`
	Phone        *string `json:"phone"`
}

// CreateOrderRequest is the POST /orders body. Quantity and address fields
// are normalized by the service, not by binding rules.
type CreateOrderRequest struct {
	Items             []CreateOrderItem `json:"items"`
	PaymentID         string            `json:"paymentId"`
	RazorpayOrderID   string            `json:"razorpayOrderId"`
	RazorpaySignature string            `json:"razorpaySignature"`
	PaymentMethod     string            `json:"paymentMethod"`

	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

type CreateOrderItem struct {
	ProductID int64    `json:"productId"`
	Quantity  Quantity `json:"quantity"`
}

// Quantity tolerates whatever the storefront sends: numbers, numeric strings,
// fractions and garbage all coerce to an integer. Anything unusable becomes 0
// and is floored to 1 by the order service, never rejected.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*q = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*q = Quantity(int(v))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			*q = 0
			return nil
		}
		*q = Quantity(int(f))
	default:
		*q = 0
	}
	return nil
}

type OrderEvent struct {
	OrderID  int64     `json:"order_id"`
	UserID   int64     `json:"user_id"`
	Type     string    `json:"type"` // created, status_updated
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	Occurred time.Time `json:"occurred"`
}
