// Package repository contains data access logic separated from HTTP
// handlers. This file defines repository methods for films: CRUD, title
// search with pagination, and the transactional cascade delete that
// removes a film together with its link rows and inventory.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// ErrFilmNotFound is returned when a film cannot be found in the DB.
var ErrFilmNotFound = errors.New("film not found")

// FilmRepo encapsulates all database queries related to films.
type FilmRepo struct {
	db *sql.DB
}

// NewFilmRepo constructs a FilmRepo with the provided DB handle.
func NewFilmRepo(db *sql.DB) *FilmRepo { return &FilmRepo{db: db} }

const filmColumns = `film_id, title, description, release_year, language_id,
	rental_duration, rental_rate * 100, length, replacement_cost * 100, rating, last_update`

// scanFilm reads one film row. The money columns are DECIMAL(4,2) /
// DECIMAL(5,2) in sakila; they are multiplied by 100 in the SELECT so
// they scan into integer cents without float round-trips.
func scanFilm(row interface{ Scan(...any) error }) (*model.Film, error) {
	var f model.Film
	var desc sql.NullString
	var year, length sql.NullInt32
	err := row.Scan(&f.ID, &f.Title, &desc, &year, &f.LanguageID,
		&f.RentalDuration, &f.RentalRateCents, &length, &f.ReplacementCostCents, &f.Rating, &f.LastUpdate)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		f.Description = &d
	}
	if year.Valid {
		y := uint16(year.Int32)
		f.ReleaseYear = &y
	}
	if length.Valid {
		l := uint16(length.Int32)
		f.Length = &l
	}
	return &f, nil
}

// Create inserts a new film. On success the film's ID is populated with
// the auto-generated value and a follow-up SELECT fills in defaults.
func (r *FilmRepo) Create(ctx context.Context, f *model.Film) error {
	const q = `INSERT INTO film
	           (title, description, release_year, language_id, rental_duration,
	            rental_rate, length, replacement_cost, rating)
	           VALUES (?, ?, ?, ?, ?, ? / 100, ?, ? / 100, ?)`
	res, err := r.db.ExecContext(ctx, q,
		f.Title, f.Description, f.ReleaseYear, f.LanguageID, f.RentalDuration,
		f.RentalRateCents, f.Length, f.ReplacementCostCents, f.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	got, err := r.GetByID(ctx, f.ID)
	if err != nil {
		return err
	}
	*f = *got
	return nil
}

// GetByID fetches a film by primary key. ErrFilmNotFound is returned
// when no row matches.
func (r *FilmRepo) GetByID(ctx context.Context, id uint64) (*model.Film, error) {
	q := "SELECT " + filmColumns + " FROM film WHERE film_id = ?"
	f, err := scanFilm(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return f, nil
}

// ListAll returns every film ordered by id.
func (r *FilmRepo) ListAll(ctx context.Context) ([]*model.Film, error) {
	q := "SELECT " + filmColumns + " FROM film ORDER BY film_id"
	return r.list(ctx, q)
}

// CountAll returns the number of films in the catalog.
func (r *FilmRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM film").Scan(&n)
	return n, err
}

// FilmSearchQuery defines filters & pagination for searching films.
type FilmSearchQuery struct {
	Title    string
	Category string
	Page     int
	PageSize int
}

// Search returns films whose title (and optionally category) matches the
// query, plus the total match count for pagination.
func (r *FilmRepo) Search(ctx context.Context, q FilmSearchQuery) ([]*model.Film, int64, error) {
	where := []string{}
	args := []any{}

	if q.Title != "" {
		where = append(where, "LOWER(f.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Title)+"%")
	}
	if q.Category != "" {
		where = append(where,
			`EXISTS (SELECT 1 FROM film_category fc
			         JOIN category c ON c.category_id = fc.category_id
			         WHERE fc.film_id = f.film_id AND LOWER(c.name) = ?)`)
		args = append(args, strings.ToLower(q.Category))
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := "SELECT COUNT(*) FROM film f WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize
	dataSQL := `SELECT f.film_id, f.title, f.description, f.release_year, f.language_id,
	                   f.rental_duration, f.rental_rate * 100, f.length,
	                   f.replacement_cost * 100, f.rating, f.last_update
	            FROM film f
	            WHERE ` + cond + `
	            ORDER BY f.title ASC
	            LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	films, err := r.list(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	return films, total, nil
}

// Update rewrites the mutable columns of a film. ErrFilmNotFound is
// returned when no row was affected.
func (r *FilmRepo) Update(ctx context.Context, f *model.Film) error {
	const q = `UPDATE film
	           SET title = ?, description = ?, release_year = ?, language_id = ?,
	               rental_duration = ?, rental_rate = ? / 100, length = ?,
	               replacement_cost = ? / 100, rating = ?, last_update = CURRENT_TIMESTAMP
	           WHERE film_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		f.Title, f.Description, f.ReleaseYear, f.LanguageID, f.RentalDuration,
		f.RentalRateCents, f.Length, f.ReplacementCostCents, f.Rating, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFilmNotFound
	}
	return nil
}

// DeleteByID removes a film and all dependent records (film_actor and
// film_category links, inventory copies, closed rentals) within one
// transaction. If any copy of the film is still rented out the delete is
// refused with ErrConflict, and ErrFilmNotFound is returned when the
// film does not exist.
func (r *FilmRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	// Verify the film exists.
	var exists uint64
	if err = tx.QueryRowContext(ctx, "SELECT film_id FROM film WHERE film_id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrFilmNotFound
		}
		return err
	}

	// Refuse while any copy is still out.
	var open int64
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rental r
		 JOIN inventory i ON i.inventory_id = r.inventory_id
		 WHERE i.film_id = ? AND r.return_date IS NULL`, id).Scan(&open); err != nil {
		return err
	}
	if open > 0 {
		err = ErrConflict
		return err
	}

	// Cascade: link rows, rental history of its copies, the copies, the film.
	if _, err = tx.ExecContext(ctx, "DELETE FROM film_actor WHERE film_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM film_category WHERE film_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE o FROM orders o WHERE o.film_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE r FROM rental r
		 JOIN inventory i ON i.inventory_id = r.inventory_id
		 WHERE i.film_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM inventory WHERE film_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM film WHERE film_id = ?", id); err != nil {
		return err
	}
	return nil
}

// list runs a query returning film rows and scans them into a slice.
func (r *FilmRepo) list(ctx context.Context, q string, args ...any) ([]*model.Film, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Film
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
