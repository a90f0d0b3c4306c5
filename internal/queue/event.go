// Package queue defines message payloads exchanged over the message broker.
package queue

// RentalCreatedEvent is published when a film is successfully checked
// out. It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type RentalCreatedEvent struct {
	RentalID    uint64 `json:"rental_id"`
	OrderRef    string `json:"order_ref"`
	CustomerID  uint64 `json:"customer_id"`
	FilmID      uint64 `json:"film_id"`
	FilmTitle   string `json:"film_title"`
	InventoryID uint64 `json:"inventory_id"`
	StaffID     uint64 `json:"staff_id"`
	RentedAt    string `json:"rented_at"`
	DueAt       string `json:"due_at"`
}
