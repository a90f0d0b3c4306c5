package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

// validRatings are the MPAA ratings the film table accepts.
var validRatings = map[string]bool{"G": true, "PG": true, "PG-13": true, "R": true, "NC-17": true}

// filmStore is the slice of FilmRepo the service depends on.
type filmStore interface {
	Create(ctx context.Context, f *model.Film) error
	GetByID(ctx context.Context, id uint64) (*model.Film, error)
	ListAll(ctx context.Context) ([]*model.Film, error)
	CountAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, q repository.FilmSearchQuery) ([]*model.Film, int64, error)
	Update(ctx context.Context, f *model.Film) error
	DeleteByID(ctx context.Context, id uint64) error
}

// filmActorLister lists the cast of a film.
type filmActorLister interface {
	ListByFilm(ctx context.Context, filmID uint64) ([]*model.Actor, error)
}

// filmCategoryLister lists the categories of a film.
type filmCategoryLister interface {
	ListByFilm(ctx context.Context, filmID uint64) ([]*model.Category, error)
}

// availabilityCounter exposes the inventory counts a detail view needs.
type availabilityCounter interface {
	CountByFilm(ctx context.Context, filmID uint64) (int64, error)
	CountAvailableByFilm(ctx context.Context, filmID uint64) (int64, error)
}

// FilmService validates inputs and delegates to the film repository,
// joining in cast, categories and availability for detail views.
type FilmService struct {
	films      filmStore
	actors     filmActorLister
	categories filmCategoryLister
	inventory  availabilityCounter
}

// NewFilmService constructs a FilmService.
func NewFilmService(films filmStore, actors filmActorLister, categories filmCategoryLister, inventory availabilityCounter) *FilmService {
	return &FilmService{films: films, actors: actors, categories: categories, inventory: inventory}
}

// FilmDetails aggregates everything the film detail view renders.
type FilmDetails struct {
	Film            *model.Film       `json:"film"`
	Actors          []*model.Actor    `json:"actors"`
	Categories      []*model.Category `json:"categories"`
	TotalCopies     int64             `json:"total_copies"`
	AvailableCopies int64             `json:"available_copies"`
}

// GetFilmByID returns the film with the given id.
func (s *FilmService) GetFilmByID(ctx context.Context, id int64) (*model.Film, error) {
	if id <= 0 {
		return nil, validationf("film id must be a positive integer, got %d", id)
	}
	f, err := s.films.GetByID(ctx, uint64(id))
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return nil, notFound("film")
		}
		log.Printf("film service: get by id %d failed: %v", id, err)
		return nil, fmt.Errorf("could not load film: %w", err)
	}
	return f, nil
}

// ListFilms returns the whole catalog plus its size.
func (s *FilmService) ListFilms(ctx context.Context) ([]*model.Film, int64, error) {
	films, err := s.films.ListAll(ctx)
	if err != nil {
		log.Printf("film service: list failed: %v", err)
		return nil, 0, fmt.Errorf("could not list films: %w", err)
	}
	count, err := s.films.CountAll(ctx)
	if err != nil {
		log.Printf("film service: count failed: %v", err)
		return nil, 0, fmt.Errorf("could not count films: %w", err)
	}
	return films, count, nil
}

// SearchFilms runs a paginated title/category search. Page defaults to
// 1 and page size is clamped to [1,100].
func (s *FilmService) SearchFilms(ctx context.Context, q repository.FilmSearchQuery) ([]*model.Film, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	films, total, err := s.films.Search(ctx, q)
	if err != nil {
		log.Printf("film service: search %+v failed: %v", q, err)
		return nil, 0, fmt.Errorf("could not search films: %w", err)
	}
	return films, total, nil
}

// FilmDetailsByID loads the film plus cast, categories and availability.
func (s *FilmService) FilmDetailsByID(ctx context.Context, id int64) (*FilmDetails, error) {
	f, err := s.GetFilmByID(ctx, id)
	if err != nil {
		return nil, err
	}
	actors, err := s.actors.ListByFilm(ctx, f.ID)
	if err != nil {
		log.Printf("film service: cast of %d failed: %v", f.ID, err)
		return nil, fmt.Errorf("could not load cast: %w", err)
	}
	categories, err := s.categories.ListByFilm(ctx, f.ID)
	if err != nil {
		log.Printf("film service: categories of %d failed: %v", f.ID, err)
		return nil, fmt.Errorf("could not load categories: %w", err)
	}
	total, err := s.inventory.CountByFilm(ctx, f.ID)
	if err != nil {
		log.Printf("film service: copy count of %d failed: %v", f.ID, err)
		return nil, fmt.Errorf("could not count copies: %w", err)
	}
	avail, err := s.inventory.CountAvailableByFilm(ctx, f.ID)
	if err != nil {
		log.Printf("film service: availability of %d failed: %v", f.ID, err)
		return nil, fmt.Errorf("could not count available copies: %w", err)
	}
	return &FilmDetails{
		Film:            f,
		Actors:          actors,
		Categories:      categories,
		TotalCopies:     total,
		AvailableCopies: avail,
	}, nil
}

// validateFilm applies the per-field rules shared by create and update.
func validateFilm(f *model.Film) error {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return validationf("title is required")
	}
	if f.LanguageID == 0 {
		return validationf("language id is required")
	}
	if f.RentalDuration == 0 {
		return validationf("rental duration must be at least one day")
	}
	if f.RentalRateCents == 0 {
		return validationf("rental rate must be positive")
	}
	f.Rating = strings.ToUpper(strings.TrimSpace(f.Rating))
	if f.Rating == "" {
		f.Rating = "G"
	}
	if !validRatings[f.Rating] {
		return validationf("unknown rating %q", f.Rating)
	}
	return nil
}

// CreateFilm saves a new film after validating its fields. The film's
// generated id is populated on success.
func (s *FilmService) CreateFilm(ctx context.Context, f *model.Film) error {
	if err := validateFilm(f); err != nil {
		return err
	}
	if err := s.films.Create(ctx, f); err != nil {
		log.Printf("film service: create %q failed: %v", f.Title, err)
		return fmt.Errorf("could not create film: %w", err)
	}
	return nil
}

// UpdateFilm rewrites an existing film after validating its fields.
func (s *FilmService) UpdateFilm(ctx context.Context, f *model.Film) error {
	if f.ID == 0 {
		return validationf("film id must be a positive integer")
	}
	if err := validateFilm(f); err != nil {
		return err
	}
	if err := s.films.Update(ctx, f); err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return notFound("film")
		}
		log.Printf("film service: update %d failed: %v", f.ID, err)
		return fmt.Errorf("could not update film: %w", err)
	}
	return nil
}

// DeleteFilm removes a film and everything hanging off it. The
// repository refuses with ErrConflict while copies are rented out;
// that error is passed through untranslated so the controller can map
// it to 409.
func (s *FilmService) DeleteFilm(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationf("film id must be a positive integer, got %d", id)
	}
	if err := s.films.DeleteByID(ctx, uint64(id)); err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return notFound("film")
		}
		if errors.Is(err, repository.ErrConflict) {
			return err
		}
		log.Printf("film service: delete %d failed: %v", id, err)
		return fmt.Errorf("could not delete film: %w", err)
	}
	return nil
}
