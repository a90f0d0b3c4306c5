package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilmCategoryKey_Equals(t *testing.T) {
	a := FilmCategoryKey{FilmID: 1, CategoryID: 2}
	b := FilmCategoryKey{FilmID: 1, CategoryID: 2}
	c := FilmCategoryKey{FilmID: 2, CategoryID: 1}

	assert.True(t, a.Equals(b))
	assert.True(t, b.Equals(a))
	assert.False(t, a.Equals(c))
}

func TestFilmCategoryKey_HashStable(t *testing.T) {
	a := FilmCategoryKey{FilmID: 1, CategoryID: 2}
	b := FilmCategoryKey{FilmID: 1, CategoryID: 2}

	// equal keys hash equally, and the hash is stable across calls
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), a.Hash())

	// swapped components must not collide
	swapped := FilmCategoryKey{FilmID: 2, CategoryID: 1}
	assert.NotEqual(t, a.Hash(), swapped.Hash())
}

func TestFilmActorKey(t *testing.T) {
	a := FilmActorKey{FilmID: 7, ActorID: 9}
	b := FilmActorKey{FilmID: 7, ActorID: 9}

	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equals(FilmActorKey{FilmID: 9, ActorID: 7}))

	// keys are comparable value types, so they work as map keys directly
	seen := map[FilmActorKey]bool{a: true}
	assert.True(t, seen[b])
}
