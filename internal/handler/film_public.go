package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/repository"
	"github.com/iliyamo/video-rental-store/internal/service"
)

// CatalogHandler serves the public film catalog: film lists, per-film
// details, search, categories and actors. Everything here is read-only
// and sits behind the response cache.
type CatalogHandler struct {
	Films      *service.FilmService
	Categories *service.CategoryService
	Actors     *service.ActorService
}

// NewCatalogHandler wires the catalog endpoints to their services.
func NewCatalogHandler(films *service.FilmService, categories *service.CategoryService, actors *service.ActorService) *CatalogHandler {
	return &CatalogHandler{Films: films, Categories: categories, Actors: actors}
}

// ListFilms returns the whole catalog plus its size.
// GET /films
func (h *CatalogHandler) ListFilms(c echo.Context) error {
	films, count, err := h.Films.ListFilms(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"films":     films,
		"filmCount": count,
	})
}

// FilmDetails returns one film with cast, categories and availability.
// GET /films/details?film_id=N
func (h *CatalogHandler) FilmDetails(c echo.Context) error {
	id, err := strconv.ParseInt(c.QueryParam("film_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film_id must be a positive integer"})
	}
	details, err := h.Films.FilmDetailsByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// SearchFilms runs a paginated title/category search.
// GET /films/search?title=...&category=...&page=1&page_size=20
func (h *CatalogHandler) SearchFilms(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	q := repository.FilmSearchQuery{
		Title:    c.QueryParam("title"),
		Category: c.QueryParam("category"),
		Page:     page,
		PageSize: pageSize,
	}
	films, total, err := h.Films.SearchFilms(c.Request().Context(), q)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"films":     films,
		"filmCount": total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// ListCategories returns every category.
// GET /categories
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Categories.ListCategories(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// FilmsByCategory lists the films filed under one category.
// GET /categories/:id/films
func (h *CatalogHandler) FilmsByCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category id must be a positive integer"})
	}
	ctx := c.Request().Context()
	cat, err := h.Categories.GetCategoryByID(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	films, total, err := h.Films.SearchFilms(ctx, repository.FilmSearchQuery{Category: cat.Name})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"category":  cat,
		"films":     films,
		"filmCount": total,
	})
}

// ListActors returns the full cast list, or — when first_name and
// last_name query params are present — the actors matching that name.
// GET /actors
func (h *CatalogHandler) ListActors(c echo.Context) error {
	ctx := c.Request().Context()
	first := c.QueryParam("first_name")
	last := c.QueryParam("last_name")
	if first != "" || last != "" {
		actors, err := h.Actors.GetActorsByFullName(ctx, first, last)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"actors": actors})
	}
	actors, err := h.Actors.ListActors(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"actors": actors})
}

// GetActor returns one actor by id.
// GET /actors/:id
func (h *CatalogHandler) GetActor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "actor id must be a positive integer"})
	}
	a, err := h.Actors.GetActorByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}
