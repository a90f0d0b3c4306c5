package model

import "time"

// Category is a genre films can be filed under. This struct corresponds
// to a row in the `category` table.
type Category struct {
	ID         uint64    `json:"category_id"` // category.category_id
	Name       string    `json:"name"`        // category.name
	LastUpdate time.Time `json:"last_update"` // category.last_update
}
