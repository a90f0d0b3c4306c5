package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/utils"
)

// ErrStaffNotFound is returned when a staff member cannot be found.
var ErrStaffNotFound = errors.New("staff not found")

// ErrUsernameExists is returned when creating staff with a taken username.
var ErrUsernameExists = errors.New("username already exists")

// StaffRepo encapsulates all database queries related to staff accounts.
type StaffRepo struct {
	db *sql.DB
}

// NewStaffRepo constructs a StaffRepo with the provided DB handle.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

const staffColumns = `staff_id, store_id, first_name, last_name, email,
	username, password_hash, active, last_update`

func scanStaff(row interface{ Scan(...any) error }) (*model.Staff, error) {
	var s model.Staff
	err := row.Scan(&s.ID, &s.StoreID, &s.FirstName, &s.LastName, &s.Email,
		&s.Username, &s.PasswordHash, &s.Active, &s.LastUpdate)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a staff account, hashing the password with the given
// bcrypt cost, and returns the generated ID.
func (r *StaffRepo) Create(ctx context.Context, s *model.Staff, password string, cost int) (uint64, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO staff (store_id, first_name, last_name, email, username, password_hash, active)
		 VALUES (?, ?, ?, ?, ?, ?, 1)`,
		s.StoreID, s.FirstName, s.LastName, s.Email, strings.ToLower(strings.TrimSpace(s.Username)), hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a staff member by normalized username.
func (r *StaffRepo) GetByUsername(ctx context.Context, username string) (*model.Staff, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	q := "SELECT " + staffColumns + " FROM staff WHERE username = ? LIMIT 1"
	s, err := scanStaff(r.db.QueryRowContext(ctx, q, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetByID fetches a staff member by primary key.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (*model.Staff, error) {
	q := "SELECT " + staffColumns + " FROM staff WHERE staff_id = ?"
	s, err := scanStaff(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListAll returns every staff member ordered by id.
func (r *StaffRepo) ListAll(ctx context.Context) ([]*model.Staff, error) {
	q := "SELECT " + staffColumns + " FROM staff ORDER BY staff_id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
