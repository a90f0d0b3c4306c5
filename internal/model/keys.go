package model

import (
	"fmt"
	"time"
)

// keys.go defines the composite primary keys of the two link tables.
// Both are small value types: comparing and hashing them must not depend
// on pointer identity, so they are passed by value everywhere.

// FilmActorKey is the composite primary key of the `film_actor` table.
type FilmActorKey struct {
	FilmID  uint64 `json:"film_id"`  // film_actor.film_id
	ActorID uint64 `json:"actor_id"` // film_actor.actor_id
}

// Equals reports whether two keys identify the same film/actor pair.
func (k FilmActorKey) Equals(o FilmActorKey) bool {
	return k.FilmID == o.FilmID && k.ActorID == o.ActorID
}

// Hash returns a stable string form of the key, usable as a map key or
// cache key. Equal keys always produce equal hashes.
func (k FilmActorKey) Hash() string {
	return fmt.Sprintf("film_actor:%d:%d", k.FilmID, k.ActorID)
}

// FilmCategoryKey is the composite primary key of the `film_category` table.
type FilmCategoryKey struct {
	FilmID     uint64 `json:"film_id"`     // film_category.film_id
	CategoryID uint64 `json:"category_id"` // film_category.category_id
}

// Equals reports whether two keys identify the same film/category pair.
func (k FilmCategoryKey) Equals(o FilmCategoryKey) bool {
	return k.FilmID == o.FilmID && k.CategoryID == o.CategoryID
}

// Hash returns a stable string form of the key. Equal keys always
// produce equal hashes.
func (k FilmCategoryKey) Hash() string {
	return fmt.Sprintf("film_category:%d:%d", k.FilmID, k.CategoryID)
}

// FilmActor is a row of the `film_actor` link table.
type FilmActor struct {
	FilmActorKey
	LastUpdate time.Time `json:"last_update"` // film_actor.last_update
}

// FilmCategory is a row of the `film_category` link table.
type FilmCategory struct {
	FilmCategoryKey
	LastUpdate time.Time `json:"last_update"` // film_category.last_update
}
