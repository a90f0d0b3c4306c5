package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/queue"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

// rentalStore is the slice of RentalRepo the service depends on.
type rentalStore interface {
	Create(ctx context.Context, rt *model.Rental) error
	Checkout(ctx context.Context, rt *model.Rental, o *model.Order) error
	GetByID(ctx context.Context, id uint64) (*model.Rental, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]*model.Rental, error)
	ListOpen(ctx context.Context) ([]*model.Rental, error)
	Return(ctx context.Context, id, customerID uint64, at time.Time) error
}

// rentalFilmGetter loads the film being rented.
type rentalFilmGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Film, error)
}

// rentalCustomerGetter loads the renting customer.
type rentalCustomerGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Customer, error)
}

// eventPublisher pushes a rental event to the broker. Publish failures
// never fail the rental itself; they are logged and dropped.
type eventPublisher func(ctx context.Context, ev queue.RentalCreatedEvent) error

// RentalService validates inputs and orchestrates checkouts: picking a
// copy, computing the due date from the film's rental duration, writing
// the rental and its order in one transaction, and announcing the
// checkout on the message queue.
type RentalService struct {
	rentals   rentalStore
	films     rentalFilmGetter
	customers rentalCustomerGetter
	publish   eventPublisher
	now       func() time.Time
}

// NewRentalService constructs a RentalService. publish may be nil to
// disable event publishing (used in tests and when the broker is down).
func NewRentalService(rentals rentalStore, films rentalFilmGetter, customers rentalCustomerGetter, publish eventPublisher) *RentalService {
	return &RentalService{
		rentals:   rentals,
		films:     films,
		customers: customers,
		publish:   publish,
		now:       time.Now,
	}
}

// AddRental records a checkout of a specific copy. The rental date is
// set to "now" in UTC and the supplied return date is propagated onto
// the rental unchanged (nil means the copy is going out open-ended).
func (s *RentalService) AddRental(ctx context.Context, inventoryID, customerID int64, returnDate *time.Time, staffID uint64) (*model.Rental, error) {
	if inventoryID <= 0 {
		return nil, validationf("inventory id must be a positive integer, got %d", inventoryID)
	}
	if customerID <= 0 {
		return nil, validationf("customer id must be a positive integer, got %d", customerID)
	}
	rt := &model.Rental{
		RentalDate:  s.now().UTC(),
		InventoryID: uint64(inventoryID),
		CustomerID:  uint64(customerID),
		ReturnDate:  returnDate,
		StaffID:     staffID,
	}
	if err := s.rentals.Create(ctx, rt); err != nil {
		log.Printf("rental service: add rental failed: %v", err)
		return nil, fmt.Errorf("could not create rental: %w", err)
	}
	return rt, nil
}

// RentFilm checks the first available copy of a film out to a customer.
// The due date is now plus the film's rental duration in days. Returns
// the rental and its order; repository.ErrNoCopyAvailable is passed
// through when everything is rented out so the controller can answer
// 409.
func (s *RentalService) RentFilm(ctx context.Context, filmID, customerID int64, staffID uint64) (*model.Rental, *model.Order, error) {
	if filmID <= 0 {
		return nil, nil, validationf("film id must be a positive integer, got %d", filmID)
	}
	if customerID <= 0 {
		return nil, nil, validationf("customer id must be a positive integer, got %d", customerID)
	}

	f, err := s.films.GetByID(ctx, uint64(filmID))
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return nil, nil, notFound("film")
		}
		log.Printf("rental service: load film %d failed: %v", filmID, err)
		return nil, nil, fmt.Errorf("could not load film: %w", err)
	}

	cust, err := s.customers.GetByID(ctx, uint64(customerID))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, nil, notFound("customer")
		}
		log.Printf("rental service: load customer %d failed: %v", customerID, err)
		return nil, nil, fmt.Errorf("could not load customer: %w", err)
	}
	if !cust.Active {
		return nil, nil, validationf("customer account is inactive")
	}

	now := s.now().UTC()
	due := now.Add(time.Duration(f.RentalDuration) * 24 * time.Hour)
	rt := &model.Rental{
		RentalDate: now,
		CustomerID: cust.ID,
		ReturnDate: nil, // open until the copy comes back; due date travels in the event
		StaffID:    staffID,
	}
	o := &model.Order{
		OrderRef:   uuid.NewString(),
		CustomerID: cust.ID,
		StaffID:    staffID,
		FilmID:     f.ID,
	}
	if err := s.rentals.Checkout(ctx, rt, o); err != nil {
		if errors.Is(err, repository.ErrNoCopyAvailable) {
			return nil, nil, err
		}
		log.Printf("rental service: checkout film %d for customer %d failed: %v", filmID, customerID, err)
		return nil, nil, fmt.Errorf("could not rent film: %w", err)
	}

	if s.publish != nil {
		ev := queue.RentalCreatedEvent{
			RentalID:    rt.ID,
			OrderRef:    o.OrderRef,
			CustomerID:  cust.ID,
			FilmID:      f.ID,
			FilmTitle:   f.Title,
			InventoryID: rt.InventoryID,
			StaffID:     staffID,
			RentedAt:    now.Format(time.RFC3339),
			DueAt:       due.Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("rental service: publish rental.created failed: %v", err)
		}
	}
	return rt, o, nil
}

// ReturnRental closes a customer's rental. Repository sentinels for
// forbidden / already-returned pass through for the controller to map.
func (s *RentalService) ReturnRental(ctx context.Context, rentalID, customerID int64) error {
	if rentalID <= 0 {
		return validationf("rental id must be a positive integer, got %d", rentalID)
	}
	if customerID <= 0 {
		return validationf("customer id must be a positive integer, got %d", customerID)
	}
	err := s.rentals.Return(ctx, uint64(rentalID), uint64(customerID), s.now().UTC())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRentalNotFound):
		return notFound("rental")
	case errors.Is(err, repository.ErrForbidden), errors.Is(err, repository.ErrAlreadyReturned):
		return err
	default:
		log.Printf("rental service: return %d failed: %v", rentalID, err)
		return fmt.Errorf("could not return rental: %w", err)
	}
}

// ListCustomerRentals returns a customer's rental history.
func (s *RentalService) ListCustomerRentals(ctx context.Context, customerID int64) ([]*model.Rental, error) {
	if customerID <= 0 {
		return nil, validationf("customer id must be a positive integer, got %d", customerID)
	}
	rentals, err := s.rentals.ListByCustomer(ctx, uint64(customerID))
	if err != nil {
		log.Printf("rental service: list for customer %d failed: %v", customerID, err)
		return nil, fmt.Errorf("could not list rentals: %w", err)
	}
	return rentals, nil
}

// ListOpenRentals returns every rental whose copy is still out.
func (s *RentalService) ListOpenRentals(ctx context.Context) ([]*model.Rental, error) {
	rentals, err := s.rentals.ListOpen(ctx)
	if err != nil {
		log.Printf("rental service: list open failed: %v", err)
		return nil, fmt.Errorf("could not list open rentals: %w", err)
	}
	return rentals, nil
}
