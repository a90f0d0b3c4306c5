package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/handler"
	"github.com/iliyamo/video-rental-store/internal/middleware"
)

// RegisterCustomer registers CUSTOMER-scoped rental endpoints. All
// routes require a valid JWT and the CUSTOMER role; the customer id is
// always taken from the token.
func RegisterCustomer(e *echo.Echo, r *handler.RentalHandler, jwtSecret string) {
	g := e.Group(
		"",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleCustomer),
	)

	// Rents the first available copy of the film to the caller.
	g.POST("/rent/:filmid", r.RentFilm)
	g.POST("/rentals/:id/return", r.ReturnRental)
	g.GET("/my-rentals", r.MyRentals)
}
