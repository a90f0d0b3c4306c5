package model

import "time"

// Inventory is one physical copy of a film held by a store. This struct
// corresponds to a row in the `inventory` table. A copy has no
// availability flag of its own: a copy is available exactly when no
// rental row references it with a NULL return_date.
type Inventory struct {
	ID         uint64    `json:"inventory_id"` // inventory.inventory_id
	FilmID     uint64    `json:"film_id"`      // inventory.film_id
	StoreID    uint64    `json:"store_id"`     // inventory.store_id
	LastUpdate time.Time `json:"last_update"`  // inventory.last_update
}
