package model

import "time"

// Staff is a store employee with owner-level access to the management
// endpoints. This struct corresponds to a row in the `staff` table.
// Username and PasswordHash back staff logins.
type Staff struct {
	ID           uint64    `json:"staff_id"`   // staff.staff_id
	StoreID      uint64    `json:"store_id"`   // staff.store_id
	FirstName    string    `json:"first_name"` // staff.first_name
	LastName     string    `json:"last_name"`  // staff.last_name
	Email        string    `json:"email"`      // staff.email
	Username     string    `json:"username"`   // staff.username
	PasswordHash string    `json:"-"`          // staff.password_hash, never exposed
	Active       bool      `json:"active"`     // staff.active
	LastUpdate   time.Time `json:"last_update"`
}
