package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/handler"
	"github.com/iliyamo/video-rental-store/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token: the presented token is revoked and a
	// new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes the refresh token in the body, so no JWT is needed.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(handler.RoleOwner, handler.RoleCustomer))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the unauthenticated browse endpoints. These
// are the hottest routes in the application, so the whole set sits
// behind the Redis response cache (extra may be empty when Redis is
// disabled).
func RegisterCatalog(e *echo.Echo, p *handler.CatalogHandler, extra ...echo.MiddlewareFunc) {
	g := e.Group("", extra...)
	g.GET("/films", p.ListFilms)
	g.GET("/films/details", p.FilmDetails)
	g.GET("/films/search", p.SearchFilms)
	g.GET("/categories", p.ListCategories)
	g.GET("/categories/:id/films", p.FilmsByCategory)
	g.GET("/actors", p.ListActors)
	g.GET("/actors/:id", p.GetActor)
}
