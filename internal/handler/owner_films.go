package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/repository"
	"github.com/iliyamo/video-rental-store/internal/service"
)

// OwnerHandler serves the store-owner area: catalog management, shelf
// stock, customers and checkout records. Every route here sits behind
// the OWNER role check.
type OwnerHandler struct {
	Films      *service.FilmService
	Categories *service.CategoryService
	Actors     *service.ActorService
	Rentals    *service.RentalService
	Inventory  *repository.InventoryRepo
	FilmActors *repository.FilmActorRepo
	Customers  *repository.CustomerRepo
	Staff      *repository.StaffRepo
	Orders     *repository.OrderRepo
	StoreID    uint64
}

type filmRequest struct {
	Title                string   `json:"title" validate:"required,max=255"`
	Description          *string  `json:"description"`
	ReleaseYear          *uint16  `json:"release_year" validate:"omitempty,gte=1901,lte=2155"`
	LanguageID           uint64   `json:"language_id" validate:"required"`
	RentalDuration       uint8    `json:"rental_duration" validate:"required,min=1"`
	RentalRateCents      uint32   `json:"rental_rate_cents" validate:"required"`
	Length               *uint16  `json:"length"`
	ReplacementCostCents uint32   `json:"replacement_cost_cents"`
	Rating               string   `json:"rating" validate:"omitempty,oneof=G PG PG-13 R NC-17"`
	Copies               int      `json:"copies" validate:"omitempty,min=0,max=100"`
	CategoryIDs          []uint64 `json:"category_ids"`
	ActorIDs             []uint64 `json:"actor_ids"`
}

func (fr *filmRequest) toModel() *model.Film {
	return &model.Film{
		Title:                fr.Title,
		Description:          fr.Description,
		ReleaseYear:          fr.ReleaseYear,
		LanguageID:           fr.LanguageID,
		RentalDuration:       fr.RentalDuration,
		RentalRateCents:      fr.RentalRateCents,
		Length:               fr.Length,
		ReplacementCostCents: fr.ReplacementCostCents,
		Rating:               fr.Rating,
	}
}

// filmStock is one row of the manage-films view: the film plus how many
// copies exist and how many are on the shelf right now.
type filmStock struct {
	Film            *model.Film `json:"film"`
	TotalCopies     int64       `json:"total_copies"`
	AvailableCopies int64       `json:"available_copies"`
}

// ManageFilms lists the catalog with per-film stock so the owner can
// see at a glance what is rentable.
// GET /owner/manage-films
func (h *OwnerHandler) ManageFilms(c echo.Context) error {
	ctx := c.Request().Context()
	films, count, err := h.Films.ListFilms(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}

	available := make([]filmStock, 0, len(films))
	for _, f := range films {
		total, err := h.Inventory.CountByFilm(ctx, f.ID)
		if err != nil {
			c.Logger().Errorf("manage-films: count copies of %d: %v", f.ID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		free, err := h.Inventory.CountAvailableByFilm(ctx, f.ID)
		if err != nil {
			c.Logger().Errorf("manage-films: availability of %d: %v", f.ID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		available = append(available, filmStock{Film: f, TotalCopies: total, AvailableCopies: free})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"availableFilms": available,
		"filmCount":      count,
	})
}

// CreateFilm adds a film to the catalog, files it under its categories,
// credits its cast and puts the requested number of copies on the
// shelf.
// POST /owner/films
func (h *OwnerHandler) CreateFilm(c echo.Context) error {
	var body filmRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	ctx := c.Request().Context()
	f := body.toModel()
	if err := h.Films.CreateFilm(ctx, f); err != nil {
		return writeServiceError(c, err)
	}

	for _, catID := range body.CategoryIDs {
		if err := h.Categories.AssignFilmCategory(ctx, int64(f.ID), int64(catID)); err != nil {
			return writeServiceError(c, err)
		}
	}
	for _, actorID := range body.ActorIDs {
		key := model.FilmActorKey{ActorID: actorID, FilmID: f.ID}
		if err := h.FilmActors.Link(ctx, key); err != nil {
			c.Logger().Errorf("create film: credit actor %d: %v", actorID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	for i := 0; i < body.Copies; i++ {
		inv := &model.Inventory{FilmID: f.ID, StoreID: h.StoreID}
		if err := h.Inventory.Create(ctx, inv); err != nil {
			c.Logger().Errorf("create film: add copy of %d: %v", f.ID, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"film": f, "copies": body.Copies})
}

// EditFilmForm returns the film being edited plus the data the edit
// form needs alongside it.
// GET /owner/edit/:id
func (h *OwnerHandler) EditFilmForm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film id must be a positive integer"})
	}
	ctx := c.Request().Context()
	details, err := h.Films.FilmDetailsByID(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	categories, err := h.Categories.ListCategories(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"film":       details,
		"categories": categories,
	})
}

// UpdateFilm rewrites an existing film.
// POST /owner/edit/:id
func (h *OwnerHandler) UpdateFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film id must be a positive integer"})
	}
	var body filmRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	f := body.toModel()
	f.ID = uint64(id)
	if err := h.Films.UpdateFilm(c.Request().Context(), f); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"film": f})
}

// DeleteFilm removes a film and everything hanging off it. Answers 409
// while copies are rented out.
// POST /owner/delete/:id
func (h *OwnerHandler) DeleteFilm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film id must be a positive integer"})
	}
	if err := h.Films.DeleteFilm(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "film deleted"})
}

// AssignCategory files a film under a category.
// POST /owner/films/:id/categories/:catid
func (h *OwnerHandler) AssignCategory(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film id must be a positive integer"})
	}
	catID, err := pathID(c, "catid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category id must be a positive integer"})
	}
	if err := h.Categories.AssignFilmCategory(c.Request().Context(), filmID, catID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category assigned"})
}

// UnassignCategory removes a film from a category.
// DELETE /owner/films/:id/categories/:catid
func (h *OwnerHandler) UnassignCategory(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "film id must be a positive integer"})
	}
	catID, err := pathID(c, "catid")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category id must be a positive integer"})
	}
	if err := h.Categories.UnassignFilmCategory(c.Request().Context(), filmID, catID); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category unassigned"})
}

type inventoryRequest struct {
	FilmID  uint64 `json:"film_id" validate:"required"`
	StoreID uint64 `json:"store_id"`
}

// AddInventory puts another copy of a film on the shelf.
// POST /owner/inventory
func (h *OwnerHandler) AddInventory(c echo.Context) error {
	var body inventoryRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return err
	}
	if body.StoreID == 0 {
		body.StoreID = h.StoreID
	}

	inv := &model.Inventory{FilmID: body.FilmID, StoreID: body.StoreID}
	if err := h.Inventory.Create(c.Request().Context(), inv); err != nil {
		c.Logger().Errorf("add inventory: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add copy"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"inventory": inv})
}

// DeleteInventory takes a copy off the shelf. Answers 409 while the
// copy is rented out.
// DELETE /owner/inventory/:id
func (h *OwnerHandler) DeleteInventory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "inventory id must be a positive integer"})
	}
	if err := h.Inventory.DeleteByID(c.Request().Context(), uint64(id)); err != nil {
		switch {
		case errors.Is(err, repository.ErrInventoryNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "inventory not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "copy is rented out"})
		default:
			c.Logger().Errorf("delete inventory %d: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "copy removed"})
}
