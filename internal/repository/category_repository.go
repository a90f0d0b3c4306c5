package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// ErrCategoryNotFound is returned when a category cannot be found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepo encapsulates all database queries related to categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts a new category and populates the generated ID.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx, "INSERT INTO category (name) VALUES (?)", c.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT last_update FROM category WHERE category_id = ?", c.ID).Scan(&c.LastUpdate)
}

// GetByID fetches a category by primary key.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	const q = "SELECT category_id, name, last_update FROM category WHERE category_id = ?"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.LastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByName fetches a category by its exact name, case-insensitively.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	const q = "SELECT category_id, name, last_update FROM category WHERE LOWER(name) = LOWER(?) LIMIT 1"
	var c model.Category
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&c.ID, &c.Name, &c.LastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every category ordered by name.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*model.Category, error) {
	const q = "SELECT category_id, name, last_update FROM category ORDER BY name"
	return r.list(ctx, q)
}

// ListByFilm returns the categories a film is filed under.
func (r *CategoryRepo) ListByFilm(ctx context.Context, filmID uint64) ([]*model.Category, error) {
	const q = `SELECT c.category_id, c.name, c.last_update
	           FROM category c
	           JOIN film_category fc ON fc.category_id = c.category_id
	           WHERE fc.film_id = ?
	           ORDER BY c.name`
	return r.list(ctx, q, filmID)
}

// Update renames a category. ErrCategoryNotFound when no row affected.
func (r *CategoryRepo) Update(ctx context.Context, c *model.Category) error {
	const q = `UPDATE category SET name = ?, last_update = CURRENT_TIMESTAMP WHERE category_id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteByID removes a category together with its film links.
func (r *CategoryRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
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

	if _, err = tx.ExecContext(ctx, "DELETE FROM film_category WHERE category_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM category WHERE category_id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrCategoryNotFound
		return err
	}
	return nil
}

func (r *CategoryRepo) list(ctx context.Context, q string, args ...any) ([]*model.Category, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.LastUpdate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
