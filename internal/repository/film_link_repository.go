// This file defines repositories for the two composite-key link tables,
// film_actor and film_category. Both tables have no surrogate ID; rows
// are addressed by their composite key value types from the model
// package.
package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// FilmActorRepo manages rows of the film_actor link table.
type FilmActorRepo struct {
	db *sql.DB
}

// NewFilmActorRepo constructs a FilmActorRepo with the provided DB handle.
func NewFilmActorRepo(db *sql.DB) *FilmActorRepo { return &FilmActorRepo{db: db} }

// Link credits an actor on a film. Inserting an existing key is a no-op
// rather than an error (MySQL 1062), so linking is idempotent.
func (r *FilmActorRepo) Link(ctx context.Context, key model.FilmActorKey) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO film_actor (film_id, actor_id) VALUES (?, ?)", key.FilmID, key.ActorID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Unlink removes an actor credit from a film.
func (r *FilmActorRepo) Unlink(ctx context.Context, key model.FilmActorKey) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM film_actor WHERE film_id = ? AND actor_id = ?", key.FilmID, key.ActorID)
	return err
}

// Exists reports whether the given film/actor pair is linked.
func (r *FilmActorRepo) Exists(ctx context.Context, key model.FilmActorKey) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM film_actor WHERE film_id = ? AND actor_id = ? LIMIT 1",
		key.FilmID, key.ActorID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListActorIDs returns the actor ids credited on a film.
func (r *FilmActorRepo) ListActorIDs(ctx context.Context, filmID uint64) ([]uint64, error) {
	return listIDs(ctx, r.db,
		"SELECT actor_id FROM film_actor WHERE film_id = ? ORDER BY actor_id", filmID)
}

// FilmCategoryRepo manages rows of the film_category link table.
type FilmCategoryRepo struct {
	db *sql.DB
}

// NewFilmCategoryRepo constructs a FilmCategoryRepo with the provided DB handle.
func NewFilmCategoryRepo(db *sql.DB) *FilmCategoryRepo { return &FilmCategoryRepo{db: db} }

// Link files a film under a category, idempotently.
func (r *FilmCategoryRepo) Link(ctx context.Context, key model.FilmCategoryKey) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO film_category (film_id, category_id) VALUES (?, ?)", key.FilmID, key.CategoryID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return nil
	}
	return err
}

// Unlink removes a film from a category.
func (r *FilmCategoryRepo) Unlink(ctx context.Context, key model.FilmCategoryKey) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM film_category WHERE film_id = ? AND category_id = ?", key.FilmID, key.CategoryID)
	return err
}

// Exists reports whether the given film/category pair is linked.
func (r *FilmCategoryRepo) Exists(ctx context.Context, key model.FilmCategoryKey) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM film_category WHERE film_id = ? AND category_id = ? LIMIT 1",
		key.FilmID, key.CategoryID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListCategoryIDs returns the category ids a film is filed under.
func (r *FilmCategoryRepo) ListCategoryIDs(ctx context.Context, filmID uint64) ([]uint64, error) {
	return listIDs(ctx, r.db,
		"SELECT category_id FROM film_category WHERE film_id = ? ORDER BY category_id", filmID)
}

// listIDs scans a single-column id result set.
func listIDs(ctx context.Context, db *sql.DB, q string, args ...any) ([]uint64, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
