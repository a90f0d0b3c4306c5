package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/queue"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

// fakeRentalStore is an in-memory rentalStore for unit tests.
type fakeRentalStore struct {
	rentals   map[uint64]*model.Rental
	nextID    uint64
	freeCopy  uint64 // inventory id Checkout hands out; 0 means sold out
	lastOrder *model.Order
}

func newFakeRentalStore() *fakeRentalStore {
	return &fakeRentalStore{rentals: map[uint64]*model.Rental{}, nextID: 1, freeCopy: 101}
}

func (s *fakeRentalStore) Create(_ context.Context, rt *model.Rental) error {
	rt.ID = s.nextID
	s.nextID++
	s.rentals[rt.ID] = rt
	return nil
}

func (s *fakeRentalStore) Checkout(ctx context.Context, rt *model.Rental, o *model.Order) error {
	if s.freeCopy == 0 {
		return repository.ErrNoCopyAvailable
	}
	rt.InventoryID = s.freeCopy
	if err := s.Create(ctx, rt); err != nil {
		return err
	}
	o.RentalID = rt.ID
	o.ID = rt.ID
	o.CreatedAt = rt.RentalDate
	s.lastOrder = o
	return nil
}

func (s *fakeRentalStore) GetByID(_ context.Context, id uint64) (*model.Rental, error) {
	rt, ok := s.rentals[id]
	if !ok {
		return nil, repository.ErrRentalNotFound
	}
	return rt, nil
}

func (s *fakeRentalStore) ListByCustomer(_ context.Context, customerID uint64) ([]*model.Rental, error) {
	var out []*model.Rental
	for _, rt := range s.rentals {
		if rt.CustomerID == customerID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (s *fakeRentalStore) ListOpen(_ context.Context) ([]*model.Rental, error) {
	var out []*model.Rental
	for _, rt := range s.rentals {
		if rt.ReturnDate == nil {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (s *fakeRentalStore) Return(_ context.Context, id, customerID uint64, at time.Time) error {
	rt, ok := s.rentals[id]
	if !ok {
		return repository.ErrRentalNotFound
	}
	if rt.CustomerID != customerID {
		return repository.ErrForbidden
	}
	if rt.ReturnDate != nil {
		return repository.ErrAlreadyReturned
	}
	rt.ReturnDate = &at
	return nil
}

type fixedFilms map[uint64]*model.Film

func (m fixedFilms) GetByID(_ context.Context, id uint64) (*model.Film, error) {
	f, ok := m[id]
	if !ok {
		return nil, repository.ErrFilmNotFound
	}
	return f, nil
}

type fixedCustomers map[uint64]*model.Customer

func (m fixedCustomers) GetByID(_ context.Context, id uint64) (*model.Customer, error) {
	c, ok := m[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return c, nil
}

func newTestRentalService(store *fakeRentalStore, publish eventPublisher) *RentalService {
	films := fixedFilms{10: {ID: 10, Title: "BUCKET BROTHERHOOD", RentalDuration: 7, RentalRateCents: 499, LanguageID: 1, Rating: "PG"}}
	customers := fixedCustomers{20: {ID: 20, FirstName: "MARY", LastName: "SMITH", Active: true},
		21: {ID: 21, FirstName: "IDLE", LastName: "ACCOUNT", Active: false}}
	return NewRentalService(store, films, customers, publish)
}

func TestAddRental_SetsRentalDateNowAndPropagatesReturnDate(t *testing.T) {
	store := newFakeRentalStore()
	svc := newTestRentalService(store, nil)

	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	due := fixed.Add(72 * time.Hour)
	rt, err := svc.AddRental(context.Background(), 101, 20, &due, 1)
	require.NoError(t, err)

	assert.Equal(t, fixed, rt.RentalDate, "rental date is stamped with now")
	require.NotNil(t, rt.ReturnDate)
	assert.Equal(t, due, *rt.ReturnDate, "supplied return date propagates unchanged")
	assert.Equal(t, uint64(101), rt.InventoryID)
	assert.Equal(t, uint64(20), rt.CustomerID)
}

func TestAddRental_Validation(t *testing.T) {
	svc := newTestRentalService(newFakeRentalStore(), nil)

	_, err := svc.AddRental(context.Background(), 0, 20, nil, 1)
	assert.True(t, IsValidation(err))

	_, err = svc.AddRental(context.Background(), 101, -2, nil, 1)
	assert.True(t, IsValidation(err))
}

func TestRentFilm_ChecksOutCopyAndPublishes(t *testing.T) {
	store := newFakeRentalStore()
	var published []queue.RentalCreatedEvent
	svc := newTestRentalService(store, func(_ context.Context, ev queue.RentalCreatedEvent) error {
		published = append(published, ev)
		return nil
	})
	fixed := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	rt, o, err := svc.RentFilm(context.Background(), 10, 20, 3)
	require.NoError(t, err)

	assert.Equal(t, uint64(101), rt.InventoryID)
	assert.Nil(t, rt.ReturnDate, "the copy is out until it is returned")
	assert.NotEmpty(t, o.OrderRef)
	assert.Equal(t, rt.ID, o.RentalID)

	require.Len(t, published, 1)
	assert.Equal(t, "BUCKET BROTHERHOOD", published[0].FilmTitle)
	// due date is rental duration (7 days) after checkout
	assert.Equal(t, fixed.Add(7*24*time.Hour).Format(time.RFC3339), published[0].DueAt)
}

func TestRentFilm_Failures(t *testing.T) {
	store := newFakeRentalStore()
	svc := newTestRentalService(store, nil)
	ctx := context.Background()

	_, _, err := svc.RentFilm(ctx, -1, 20, 1)
	assert.True(t, IsValidation(err))

	_, _, err = svc.RentFilm(ctx, 999, 20, 1)
	assert.True(t, IsNotFound(err))

	_, _, err = svc.RentFilm(ctx, 10, 999, 1)
	assert.True(t, IsNotFound(err))

	// inactive customers cannot rent
	_, _, err = svc.RentFilm(ctx, 10, 21, 1)
	assert.True(t, IsValidation(err))

	// sold out maps to the conflict sentinel
	store.freeCopy = 0
	_, _, err = svc.RentFilm(ctx, 10, 20, 1)
	assert.ErrorIs(t, err, repository.ErrNoCopyAvailable)
}

func TestReturnRental(t *testing.T) {
	store := newFakeRentalStore()
	svc := newTestRentalService(store, nil)
	ctx := context.Background()

	rt, _, err := svc.RentFilm(ctx, 10, 20, 1)
	require.NoError(t, err)

	// someone else's rental is forbidden
	err = svc.ReturnRental(ctx, int64(rt.ID), 21)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	require.NoError(t, svc.ReturnRental(ctx, int64(rt.ID), 20))
	assert.NotNil(t, store.rentals[rt.ID].ReturnDate)

	// double return is reported distinctly
	err = svc.ReturnRental(ctx, int64(rt.ID), 20)
	assert.ErrorIs(t, err, repository.ErrAlreadyReturned)

	assert.True(t, IsNotFound(svc.ReturnRental(ctx, 12345, 20)))
	assert.True(t, IsValidation(svc.ReturnRental(ctx, 0, 20)))
}
