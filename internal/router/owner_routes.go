package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/handler"
	"github.com/iliyamo/video-rental-store/internal/middleware"
)

// RegisterOwner registers OWNER-scoped endpoints under /owner.
// All routes require a valid JWT and the OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(handler.RoleOwner),
	)

	g.GET("", o.Dashboard)

	// ---- Films ----
	g.GET("/manage-films", o.ManageFilms)
	g.POST("/films", o.CreateFilm)
	g.GET("/edit/:id", o.EditFilmForm)
	g.POST("/edit/:id", o.UpdateFilm)
	g.POST("/delete/:id", o.DeleteFilm)
	g.POST("/films/:id/categories/:catid", o.AssignCategory)
	g.DELETE("/films/:id/categories/:catid", o.UnassignCategory)

	// ---- Inventory ----
	g.POST("/inventory", o.AddInventory)
	g.DELETE("/inventory/:id", o.DeleteInventory)

	// ---- Rentals ----
	g.POST("/rentals", o.AddRental)
	g.GET("/rentals/open", o.ListOpenRentals)

	// ---- Orders ----
	g.GET("/orders", o.ListOrders)
	g.GET("/orders/:ref", o.GetOrder)

	// ---- Customers ----
	g.GET("/customers", o.ListCustomers)
	g.PATCH("/customers/:id/active", o.SetCustomerActive)
	g.DELETE("/customers/:id", o.DeleteCustomer)

	// ---- Actors and categories ----
	g.POST("/actors", o.CreateActor)
	g.DELETE("/actors/:id", o.DeleteActor)
	g.POST("/categories", o.CreateCategory)
	g.DELETE("/categories/:id", o.DeleteCategory)
}
