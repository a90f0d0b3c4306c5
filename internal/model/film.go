package model

import "time"

// Film is a title the store stocks physical copies of. This struct
// corresponds to a row in the `film` table. RentalDuration is the standard
// loan period in days and is the basis for computing due dates when a
// copy is rented. Rates and costs are stored in cents to avoid floating
// point money arithmetic.
//
// Fields:
//
//	ID                  – primary key identifier.
//	Title               – film title, required.
//	Description         – optional synopsis.
//	ReleaseYear         – optional release year.
//	LanguageID          – reference to the language table.
//	RentalDuration      – standard rental period in days.
//	RentalRateCents     – price per rental period in cents.
//	Length              – optional running time in minutes.
//	ReplacementCostCents – charge for a lost copy in cents.
//	Rating              – MPAA rating (G, PG, PG-13, R, NC-17).
//	LastUpdate          – timestamp of last modification.
type Film struct {
	ID                   uint64    `json:"film_id"`                // film.film_id
	Title                string    `json:"title"`                  // film.title
	Description          *string   `json:"description,omitempty"`  // film.description (nullable)
	ReleaseYear          *uint16   `json:"release_year,omitempty"` // film.release_year (nullable)
	LanguageID           uint64    `json:"language_id"`            // film.language_id
	RentalDuration       uint8     `json:"rental_duration"`        // film.rental_duration
	RentalRateCents      uint32    `json:"rental_rate_cents"`      // film.rental_rate
	Length               *uint16   `json:"length,omitempty"`       // film.length (nullable)
	ReplacementCostCents uint32    `json:"replacement_cost_cents"` // film.replacement_cost
	Rating               string    `json:"rating"`                 // film.rating
	LastUpdate           time.Time `json:"last_update"`            // film.last_update
}
