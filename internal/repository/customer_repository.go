package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/utils"
)

// ErrCustomerNotFound is returned when a customer cannot be found.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrEmailExists is returned when registration hits the unique email index.
var ErrEmailExists = errors.New("email already exists")

// CustomerRepo encapsulates all database queries related to customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the provided DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerColumns = `customer_id, store_id, first_name, last_name, email,
	password_hash, active, create_date, last_update`

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.StoreID, &c.FirstName, &c.LastName, &c.Email,
		&c.PasswordHash, &c.Active, &c.CreateDate, &c.LastUpdate)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create registers a customer, hashing the supplied password with the
// given bcrypt cost. The generated ID is returned. A duplicate email is
// reported as ErrEmailExists (MySQL error 1062).
func (r *CustomerRepo) Create(ctx context.Context, storeID uint64, first, last, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customer (store_id, first_name, last_name, email, password_hash, active, create_date)
		 VALUES (?, ?, ?, ?, ?, 1, NOW())`,
		storeID, first, last, email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a customer by primary key.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customer WHERE customer_id = ?"
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByEmail fetches a customer by normalized email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	q := "SELECT " + customerColumns + " FROM customer WHERE email = ? LIMIT 1"
	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns every customer ordered by id.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customer ORDER BY customer_id"
	return r.list(ctx, q)
}

// ListActive returns customers allowed to rent.
func (r *CustomerRepo) ListActive(ctx context.Context) ([]*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customer WHERE active = 1 ORDER BY customer_id"
	return r.list(ctx, q)
}

// SetActive toggles whether a customer may rent films.
func (r *CustomerRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customer SET active = ?, last_update = CURRENT_TIMESTAMP WHERE customer_id = ?",
		active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// DeleteByID removes a customer. The delete is refused with ErrConflict
// while the customer still has open rentals; closed rentals and orders
// are removed with the account.
func (r *CustomerRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
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
		"SELECT COUNT(*) FROM rental WHERE customer_id = ? AND return_date IS NULL", id).Scan(&open); err != nil {
		return err
	}
	if open > 0 {
		err = ErrConflict
		return err
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM orders WHERE customer_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM rental WHERE customer_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM customer WHERE customer_id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrCustomerNotFound
		return err
	}
	return nil
}

func (r *CustomerRepo) list(ctx context.Context, q string, args ...any) ([]*model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
