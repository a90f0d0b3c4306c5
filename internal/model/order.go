package model

import "time"

// Order is the checkout record written whenever a rental is created.
// It corresponds to a row in the `orders` table and gives staff a flat,
// reference-numbered view of every checkout without joining through
// rental and inventory. OrderRef is a UUID handed to the customer as a
// receipt number.
type Order struct {
	ID         uint64    `json:"order_id"`    // orders.order_id
	OrderRef   string    `json:"order_ref"`   // orders.order_ref (UUID)
	CustomerID uint64    `json:"customer_id"` // orders.customer_id
	StaffID    uint64    `json:"staff_id"`    // orders.staff_id
	RentalID   uint64    `json:"rental_id"`   // orders.rental_id
	FilmID     uint64    `json:"film_id"`     // orders.film_id
	CreatedAt  time.Time `json:"created_at"`  // orders.created_at
}
