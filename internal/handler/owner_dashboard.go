package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/repository"
)

// Dashboard is the owner landing page: staff, customers and every
// rental still out, in one response.
// GET /owner
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	staff, err := h.Staff.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("dashboard: list staff: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	customers, err := h.Customers.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("dashboard: list customers: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	inventory, err := h.Inventory.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("dashboard: list inventory: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	openRentals, err := h.Rentals.ListOpenRentals(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	_, filmCount, err := h.Films.ListFilms(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"staff":       staff,
		"customers":   customers,
		"inventory":   inventory,
		"openRentals": openRentals,
		"filmCount":   filmCount,
	})
}

// ListOrders returns checkout records, newest first, optionally scoped
// to one customer.
// GET /owner/orders?customer_id=N
func (h *OwnerHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	if raw := c.QueryParam("customer_id"); raw != "" {
		customerID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id must be a positive integer"})
		}
		orders, err := h.Orders.ListByCustomer(ctx, customerID)
		if err != nil {
			c.Logger().Errorf("list orders for customer %d: %v", customerID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": orders})
	}

	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		c.Logger().Errorf("list orders: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// GetOrder looks an order up by its receipt reference.
// GET /owner/orders/:ref
func (h *OwnerHandler) GetOrder(c echo.Context) error {
	o, err := h.Orders.GetByRef(c.Request().Context(), c.Param("ref"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		c.Logger().Errorf("get order: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, o)
}

// ListCustomers returns customers, optionally only the active ones.
// GET /owner/customers?active=1
func (h *OwnerHandler) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		customers interface{}
		err       error
	)
	if c.QueryParam("active") == "1" {
		customers, err = h.Customers.ListActive(ctx)
	} else {
		customers, err = h.Customers.ListAll(ctx)
	}
	if err != nil {
		c.Logger().Errorf("list customers: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"customers": customers})
}

type customerActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SetCustomerActive toggles whether a customer may rent.
// PATCH /owner/customers/:id/active
func (h *OwnerHandler) SetCustomerActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer id must be a positive integer"})
	}
	var body customerActiveRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	if err := h.Customers.SetActive(c.Request().Context(), uint64(id), *body.Active); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		c.Logger().Errorf("set customer %d active: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer updated"})
}

// DeleteCustomer removes a customer account. Answers 409 while the
// customer still has rentals out.
// DELETE /owner/customers/:id
func (h *OwnerHandler) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer id must be a positive integer"})
	}
	if err := h.Customers.DeleteByID(c.Request().Context(), uint64(id)); err != nil {
		switch {
		case errors.Is(err, repository.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "customer has rentals out"})
		default:
			c.Logger().Errorf("delete customer %d: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted"})
}

type manualRentalRequest struct {
	InventoryID int64  `json:"inventory_id" validate:"required,min=1"`
	CustomerID  int64  `json:"customer_id" validate:"required,min=1"`
	ReturnDate  string `json:"return_date"` // RFC 3339, optional
}

// AddRental records an over-the-counter checkout of a specific copy,
// stamped with the logged-in staff member.
// POST /owner/rentals
func (h *OwnerHandler) AddRental(c echo.Context) error {
	staffID, err := getAccountID(c)
	if err != nil {
		return unauthorized(c)
	}
	var body manualRentalRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	var returnDate *time.Time
	if body.ReturnDate != "" {
		t, err := time.Parse(time.RFC3339, body.ReturnDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "return_date must be RFC 3339"})
		}
		returnDate = &t
	}

	rt, err := h.Rentals.AddRental(c.Request().Context(), body.InventoryID, body.CustomerID, returnDate, staffID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"rental": rt})
}

// ListOpenRentals returns every rental whose copy is still out.
// GET /owner/rentals/open
func (h *OwnerHandler) ListOpenRentals(c echo.Context) error {
	rentals, err := h.Rentals.ListOpenRentals(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rentals": rentals})
}

type actorRequest struct {
	FirstName string `json:"first_name" validate:"required,max=45"`
	LastName  string `json:"last_name" validate:"required,max=45"`
}

// CreateActor adds an actor to the catalog.
// POST /owner/actors
func (h *OwnerHandler) CreateActor(c echo.Context) error {
	var body actorRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	a, err := h.Actors.CreateActor(c.Request().Context(), body.FirstName, body.LastName)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// DeleteActor removes an actor and its film credits.
// DELETE /owner/actors/:id
func (h *OwnerHandler) DeleteActor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "actor id must be a positive integer"})
	}
	if err := h.Actors.DeleteActor(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "actor deleted"})
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=25"`
}

// CreateCategory adds a category.
// POST /owner/categories
func (h *OwnerHandler) CreateCategory(c echo.Context) error {
	var body categoryRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	cat, err := h.Categories.CreateCategory(c.Request().Context(), body.Name)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

// DeleteCategory removes a category and its film assignments.
// DELETE /owner/categories/:id
func (h *OwnerHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category id must be a positive integer"})
	}
	if err := h.Categories.DeleteCategory(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}
