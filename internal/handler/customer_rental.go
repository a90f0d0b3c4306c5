package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/service"
)

// RentalHandler serves the customer-facing rental endpoints. The
// customer id always comes from the access token, never from the
// request, so customers cannot rent or return on someone else's behalf.
type RentalHandler struct {
	Rentals *service.RentalService
	// DefaultStaffID is stamped on self-service checkouts, where no
	// staff member is physically involved.
	DefaultStaffID uint64
}

// NewRentalHandler wires the rental endpoints to the rental service.
func NewRentalHandler(rentals *service.RentalService, defaultStaffID uint64) *RentalHandler {
	return &RentalHandler{Rentals: rentals, DefaultStaffID: defaultStaffID}
}

// RentFilm checks the first available copy of a film out to the
// authenticated customer.
// POST /rent/:filmid
func (h *RentalHandler) RentFilm(c echo.Context) error {
	customerID, err := getAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	filmID, err := pathID(c, "filmid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film id must be a positive integer"})
	}

	rt, o, err := h.Rentals.RentFilm(c.Request().Context(), filmID, int64(customerID), h.DefaultStaffID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"rental": rt,
		"order":  o,
	})
}

// ReturnRental closes one of the authenticated customer's rentals.
// POST /rentals/:id/return
func (h *RentalHandler) ReturnRental(c echo.Context) error {
	customerID, err := getAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	rentalID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rental id must be a positive integer"})
	}

	if err := h.Rentals.ReturnRental(c.Request().Context(), rentalID, int64(customerID)); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rental returned"})
}

// MyRentals returns the authenticated customer's rental history.
// GET /my-rentals
func (h *RentalHandler) MyRentals(c echo.Context) error {
	customerID, err := getAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	rentals, err := h.Rentals.ListCustomerRentals(c.Request().Context(), int64(customerID))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rentals": rentals})
}
