package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// ErrOrderNotFound is returned when an order cannot be found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo persists checkout records. An order is written in the same
// transaction as its rental so the two can never disagree.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the provided DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `order_id, order_ref, customer_id, staff_id, rental_id, film_id, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderRef, &o.CustomerID, &o.StaffID, &o.RentalID, &o.FilmID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateTx inserts an order within an existing transaction and populates
// the generated ID and created_at on the record.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
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
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE order_id = ?", o.ID).Scan(&o.CreatedAt)
}

// GetByRef fetches an order by its UUID receipt reference.
func (r *OrderRepo) GetByRef(ctx context.Context, ref string) (*model.Order, error) {
	q := "SELECT " + orderColumns + " FROM orders WHERE order_ref = ? LIMIT 1"
	o, err := scanOrder(r.db.QueryRowContext(ctx, q, ref))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListAll returns every order, newest first.
func (r *OrderRepo) ListAll(ctx context.Context) ([]*model.Order, error) {
	q := "SELECT " + orderColumns + " FROM orders ORDER BY created_at DESC"
	return r.list(ctx, q)
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]*model.Order, error) {
	q := "SELECT " + orderColumns + " FROM orders WHERE customer_id = ? ORDER BY created_at DESC"
	return r.list(ctx, q, customerID)
}

func (r *OrderRepo) list(ctx context.Context, q string, args ...any) ([]*model.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
