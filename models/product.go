package models

import "time"

// Product is read-only from the order flow's perspective: prices are
// snapshotted onto order items and stock is never decremented here.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
