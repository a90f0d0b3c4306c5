// This file defines repository methods for inventory: the physical film
// copies a store holds. Availability is never stored as a flag; a copy
// counts as available exactly when no rental row references it with a
// NULL return_date, so availability can never drift out of sync with
// the rental history.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// ErrInventoryNotFound is returned when a copy cannot be found.
var ErrInventoryNotFound = errors.New("inventory not found")

// ErrNoCopyAvailable is returned when every copy of a film is rented out.
var ErrNoCopyAvailable = errors.New("no copy available")

// InventoryRepo encapsulates all database queries related to inventory.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo constructs an InventoryRepo with the provided DB handle.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Create adds a copy of a film to a store's shelf.
func (r *InventoryRepo) Create(ctx context.Context, inv *model.Inventory) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO inventory (film_id, store_id) VALUES (?, ?)", inv.FilmID, inv.StoreID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT last_update FROM inventory WHERE inventory_id = ?", inv.ID).Scan(&inv.LastUpdate)
}

// GetByID fetches a copy by primary key.
func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (*model.Inventory, error) {
	const q = "SELECT inventory_id, film_id, store_id, last_update FROM inventory WHERE inventory_id = ?"
	var inv model.Inventory
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&inv.ID, &inv.FilmID, &inv.StoreID, &inv.LastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListAll returns every copy across stores, for the owner dashboard.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]*model.Inventory, error) {
	const q = `SELECT inventory_id, film_id, store_id, last_update
	           FROM inventory ORDER BY inventory_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Inventory
	for rows.Next() {
		inv := new(model.Inventory)
		if err := rows.Scan(&inv.ID, &inv.FilmID, &inv.StoreID, &inv.LastUpdate); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByFilm returns every copy of a film across stores.
func (r *InventoryRepo) ListByFilm(ctx context.Context, filmID uint64) ([]*model.Inventory, error) {
	const q = `SELECT inventory_id, film_id, store_id, last_update
	           FROM inventory WHERE film_id = ? ORDER BY inventory_id`
	rows, err := r.db.QueryContext(ctx, q, filmID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Inventory
	for rows.Next() {
		inv := new(model.Inventory)
		if err := rows.Scan(&inv.ID, &inv.FilmID, &inv.StoreID, &inv.LastUpdate); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByFilm returns the total number of copies of a film.
func (r *InventoryRepo) CountByFilm(ctx context.Context, filmID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inventory WHERE film_id = ?", filmID).Scan(&n)
	return n, err
}

// CountAvailableByFilm returns how many copies of a film are on the
// shelf right now, i.e. copies with no open rental.
func (r *InventoryRepo) CountAvailableByFilm(ctx context.Context, filmID uint64) (int64, error) {
	const q = `SELECT COUNT(*)
	           FROM inventory i
	           LEFT JOIN rental r ON r.inventory_id = i.inventory_id AND r.return_date IS NULL
	           WHERE i.film_id = ? AND r.rental_id IS NULL`
	var n int64
	err := r.db.QueryRowContext(ctx, q, filmID).Scan(&n)
	return n, err
}

// FindAvailableByFilmTx picks the first free copy of a film inside a
// transaction, locking the row so two concurrent checkouts cannot grab
// the same copy. ErrNoCopyAvailable when everything is rented out.
func (r *InventoryRepo) FindAvailableByFilmTx(ctx context.Context, tx *sql.Tx, filmID uint64) (*model.Inventory, error) {
	return findAvailableCopyTx(ctx, tx, filmID)
}

// findAvailableCopyTx is shared with the rental checkout transaction.
func findAvailableCopyTx(ctx context.Context, tx *sql.Tx, filmID uint64) (*model.Inventory, error) {
	const q = `SELECT i.inventory_id, i.film_id, i.store_id, i.last_update
	           FROM inventory i
	           LEFT JOIN rental r ON r.inventory_id = i.inventory_id AND r.return_date IS NULL
	           WHERE i.film_id = ? AND r.rental_id IS NULL
	           ORDER BY i.inventory_id
	           LIMIT 1
	           FOR UPDATE`
	var inv model.Inventory
	if err := tx.QueryRowContext(ctx, q, filmID).Scan(&inv.ID, &inv.FilmID, &inv.StoreID, &inv.LastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoCopyAvailable
		}
		return nil, err
	}
	return &inv, nil
}

// DeleteByID removes a copy from the shelf. The delete is refused with
// ErrConflict while the copy is rented out; its closed rental history is
// removed with it.
func (r *InventoryRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
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

	var open int64
	if err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM rental WHERE inventory_id = ? AND return_date IS NULL", id).Scan(&open); err != nil {
		return err
	}
	if open > 0 {
		err = ErrConflict
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM rental WHERE inventory_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM inventory WHERE inventory_id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrInventoryNotFound
		return err
	}
	return nil
}
