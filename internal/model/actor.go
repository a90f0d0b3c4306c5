package model

import "time"

// Actor is a performer credited on one or more films. This struct
// corresponds to a row in the `actor` table.
//
// Fields:
//
//	ID         – primary key identifier.
//	FirstName  – actor's first name, stored upper case in sakila.
//	LastName   – actor's last name.
//	LastUpdate – timestamp of last modification.
type Actor struct {
	ID         uint64    `json:"actor_id"`    // actor.actor_id
	FirstName  string    `json:"first_name"`  // actor.first_name
	LastName   string    `json:"last_name"`   // actor.last_name
	LastUpdate time.Time `json:"last_update"` // actor.last_update
}
