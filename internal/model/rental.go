package model

import "time"

// Rental records a copy being checked out by a customer. This struct
// corresponds to a row in the `rental` table. ReturnDate is nil while
// the copy is still out; the due date lives here too because the film's
// rental_duration may change after the rental was made.
//
// Fields:
//
//	ID          – primary key identifier.
//	RentalDate  – when the copy left the store (UTC).
//	InventoryID – the physical copy rented.
//	CustomerID  – the renting customer.
//	ReturnDate  – when the copy came back, nil while outstanding.
//	StaffID     – staff member who handled the checkout.
//	LastUpdate  – timestamp of last modification.
type Rental struct {
	ID          uint64     `json:"rental_id"`             // rental.rental_id
	RentalDate  time.Time  `json:"rental_date"`           // rental.rental_date
	InventoryID uint64     `json:"inventory_id"`          // rental.inventory_id
	CustomerID  uint64     `json:"customer_id"`           // rental.customer_id
	ReturnDate  *time.Time `json:"return_date,omitempty"` // rental.return_date (nullable)
	StaffID     uint64     `json:"staff_id"`              // rental.staff_id
	LastUpdate  time.Time  `json:"last_update"`           // rental.last_update
}

// Open reports whether the rented copy is still out.
func (r *Rental) Open() bool { return r.ReturnDate == nil }
