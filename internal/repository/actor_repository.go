package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/video-rental-store/internal/model"
)

// ErrActorNotFound is returned when an actor cannot be found in the DB.
var ErrActorNotFound = errors.New("actor not found")

// ActorRepo encapsulates all database queries related to actors. It
// depends on a sql.DB connection configured at startup; the constructor
// allows injecting a different pool in tests.
type ActorRepo struct {
	db *sql.DB
}

// NewActorRepo constructs an ActorRepo with the provided DB handle.
func NewActorRepo(db *sql.DB) *ActorRepo { return &ActorRepo{db: db} }

// Create inserts a new actor. On success the ID field is populated with
// the auto-generated value and LastUpdate is read back from the row.
func (r *ActorRepo) Create(ctx context.Context, a *model.Actor) error {
	const qInsert = "INSERT INTO actor (first_name, last_name) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, a.FirstName, a.LastName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)

	const qSelect = "SELECT last_update FROM actor WHERE actor_id = ?"
	return r.db.QueryRowContext(ctx, qSelect, a.ID).Scan(&a.LastUpdate)
}

// GetByID fetches an actor by primary key. ErrActorNotFound is returned
// when no row matches.
func (r *ActorRepo) GetByID(ctx context.Context, id uint64) (*model.Actor, error) {
	const q = "SELECT actor_id, first_name, last_name, last_update FROM actor WHERE actor_id = ?"
	var a model.Actor
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&a.ID, &a.FirstName, &a.LastName, &a.LastUpdate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListAll returns every actor ordered by id.
func (r *ActorRepo) ListAll(ctx context.Context) ([]*model.Actor, error) {
	const q = "SELECT actor_id, first_name, last_name, last_update FROM actor ORDER BY actor_id"
	return r.list(ctx, q)
}

// ListByFullName returns all actors matching the given first and last
// name. Sakila stores names upper case, so matching is case-insensitive.
func (r *ActorRepo) ListByFullName(ctx context.Context, first, last string) ([]*model.Actor, error) {
	const q = `SELECT actor_id, first_name, last_name, last_update
	           FROM actor
	           WHERE UPPER(first_name) = UPPER(?) AND UPPER(last_name) = UPPER(?)
	           ORDER BY actor_id`
	return r.list(ctx, q, first, last)
}

// ListByFilm returns the cast of a film via the film_actor link table.
func (r *ActorRepo) ListByFilm(ctx context.Context, filmID uint64) ([]*model.Actor, error) {
	const q = `SELECT a.actor_id, a.first_name, a.last_name, a.last_update
	           FROM actor a
	           JOIN film_actor fa ON fa.actor_id = a.actor_id
	           WHERE fa.film_id = ?
	           ORDER BY a.actor_id`
	return r.list(ctx, q, filmID)
}

// Update rewrites an actor's names. It returns ErrActorNotFound when no
// row was affected.
func (r *ActorRepo) Update(ctx context.Context, a *model.Actor) error {
	const q = `UPDATE actor
	           SET first_name = ?, last_name = ?, last_update = CURRENT_TIMESTAMP
	           WHERE actor_id = ?`
	res, err := r.db.ExecContext(ctx, q, a.FirstName, a.LastName, a.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrActorNotFound
	}
	return nil
}

// DeleteByID removes an actor and its film_actor links. The link rows go
// first so the foreign key constraint cannot fail mid-delete.
func (r *ActorRepo) DeleteByID(ctx context.Context, id uint64) (err error) {
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

	if _, err = tx.ExecContext(ctx, "DELETE FROM film_actor WHERE actor_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM actor WHERE actor_id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrActorNotFound
		return err
	}
	return nil
}

// list runs a query returning actor rows and scans them into a slice.
func (r *ActorRepo) list(ctx context.Context, q string, args ...any) ([]*model.Actor, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Actor
	for rows.Next() {
		a := new(model.Actor)
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.LastUpdate); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
