package model

import "time"

// Customer is a registered renter. This struct corresponds to a row in
// the `customer` table. PasswordHash backs API logins and is never
// serialized into responses.
//
// Fields:
//
//	ID           – primary key identifier.
//	StoreID      – store the customer signed up at.
//	FirstName    – customer's first name.
//	LastName     – customer's last name.
//	Email        – unique email, used as the login identifier.
//	PasswordHash – bcrypt hash of the customer's password.
//	Active       – whether the account may rent films.
//	CreateDate   – when the account was created.
//	LastUpdate   – timestamp of last modification.
type Customer struct {
	ID           uint64    `json:"customer_id"` // customer.customer_id
	StoreID      uint64    `json:"store_id"`    // customer.store_id
	FirstName    string    `json:"first_name"`  // customer.first_name
	LastName     string    `json:"last_name"`   // customer.last_name
	Email        string    `json:"email"`       // customer.email
	PasswordHash string    `json:"-"`           // customer.password_hash, never exposed
	Active       bool      `json:"active"`      // customer.active
	CreateDate   time.Time `json:"create_date"` // customer.create_date
	LastUpdate   time.Time `json:"last_update"` // customer.last_update
}
