package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// ErrRentalNotFound is returned when a rental cannot be found.
var ErrRentalNotFound = errors.New("rental not found")

// ErrAlreadyReturned is returned when returning a rental that is closed.
var ErrAlreadyReturned = errors.New("rental already returned")

// RentalRepo provides CRUD operations for rentals. A rental ties one
// inventory copy to one customer for a period; the copy is back on the
// shelf once return_date is set. All timestamps are stored in UTC.
type RentalRepo struct {
	db *sql.DB
}

// NewRentalRepo returns a new RentalRepo bound to the given database.
func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

const rentalColumns = `rental_id, rental_date, inventory_id, customer_id,
	return_date, staff_id, last_update`

func scanRental(row interface{ Scan(...any) error }) (*model.Rental, error) {
	var rt model.Rental
	var ret sql.NullTime
	err := row.Scan(&rt.ID, &rt.RentalDate, &rt.InventoryID, &rt.CustomerID,
		&ret, &rt.StaffID, &rt.LastUpdate)
	if err != nil {
		return nil, err
	}
	if ret.Valid {
		t := ret.Time
		rt.ReturnDate = &t
	}
	return &rt, nil
}

// CreateTx inserts a new rental within the scope of an existing
// transaction. It populates the generated ID on the provided record and
// queries the row back so defaults are filled in. The caller must
// commit or rollback the transaction.
func (r *RentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, rt *model.Rental) error {
	const q = `INSERT INTO rental (rental_date, inventory_id, customer_id, return_date, staff_id)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rt.RentalDate, rt.InventoryID, rt.CustomerID, rt.ReturnDate, rt.StaffID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)

	sel := "SELECT " + rentalColumns + " FROM rental WHERE rental_id = ?"
	got, err := scanRental(tx.QueryRowContext(ctx, sel, rt.ID))
	if err != nil {
		return err
	}
	*rt = *got
	return nil
}

// Create inserts a rental in its own transaction. Callers that need the
// insert tied to other writes should use CreateTx instead.
func (r *RentalRepo) Create(ctx context.Context, rt *model.Rental) (err error) {
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
	err = r.CreateTx(ctx, tx, rt)
	return err
}

// Checkout rents the first available copy of a film to a customer in a
// single transaction: the free copy is selected with a row lock, the
// rental is inserted, and the order (receipt) row is written alongside
// it. ErrNoCopyAvailable is returned when every copy is out.
func (r *RentalRepo) Checkout(ctx context.Context, rt *model.Rental, o *model.Order) (err error) {
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

	inv, err := findAvailableCopyTx(ctx, tx, o.FilmID)
	if err != nil {
		return err
	}
	rt.InventoryID = inv.ID

	if err = r.CreateTx(ctx, tx, rt); err != nil {
		return err
	}

	o.RentalID = rt.ID
	const q = `INSERT INTO orders (order_ref, customer_id, staff_id, rental_id, film_id)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, o.OrderRef, o.CustomerID, o.StaffID, o.RentalID, o.FilmID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	err = tx.QueryRowContext(ctx, "SELECT created_at FROM orders WHERE order_id = ?", o.ID).Scan(&o.CreatedAt)
	return err
}

// GetByID fetches a rental by primary key.
func (r *RentalRepo) GetByID(ctx context.Context, id uint64) (*model.Rental, error) {
	q := "SELECT " + rentalColumns + " FROM rental WHERE rental_id = ?"
	rt, err := scanRental(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return rt, nil
}

// ListByCustomer returns a customer's rentals, newest first.
func (r *RentalRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]*model.Rental, error) {
	q := "SELECT " + rentalColumns + " FROM rental WHERE customer_id = ? ORDER BY rental_date DESC"
	return r.list(ctx, q, customerID)
}

// ListOpen returns every rental whose copy is still out, oldest first so
// staff see the most overdue copies at the top.
func (r *RentalRepo) ListOpen(ctx context.Context) ([]*model.Rental, error) {
	q := "SELECT " + rentalColumns + " FROM rental WHERE return_date IS NULL ORDER BY rental_date ASC"
	return r.list(ctx, q)
}

// Return closes a rental by stamping its return_date. The customer
// filter guards against returning someone else's rental: when the
// rental exists but belongs to a different customer, ErrForbidden is
// returned; when it is already closed, ErrAlreadyReturned.
func (r *RentalRepo) Return(ctx context.Context, id, customerID uint64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rental SET return_date = ?, last_update = CURRENT_TIMESTAMP
		 WHERE rental_id = ? AND customer_id = ? AND return_date IS NULL`,
		at, id, customerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// No row updated: work out which failure it was.
	rt, err := r.GetByID(ctx, id)
	if err != nil {
		return err // ErrRentalNotFound or a DB error
	}
	if rt.CustomerID != customerID {
		return ErrForbidden
	}
	return ErrAlreadyReturned
}

// DeleteByID removes a rental row. Used by staff to scrub bogus
// checkouts; customer history normally keeps closed rentals around.
func (r *RentalRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rental WHERE rental_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRentalNotFound
	}
	return nil
}

func (r *RentalRepo) list(ctx context.Context, q string, args ...any) ([]*model.Rental, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
