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

// categoryStore is the slice of CategoryRepo the service depends on.
type categoryStore interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	ListAll(ctx context.Context) ([]*model.Category, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// categoryLinkStore manages film/category assignments by composite key.
type categoryLinkStore interface {
	Link(ctx context.Context, key model.FilmCategoryKey) error
	Unlink(ctx context.Context, key model.FilmCategoryKey) error
	Exists(ctx context.Context, key model.FilmCategoryKey) (bool, error)
}

// CategoryService validates inputs and delegates to the category and
// film_category repositories.
type CategoryService struct {
	categories categoryStore
	links      categoryLinkStore
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(categories categoryStore, links categoryLinkStore) *CategoryService {
	return &CategoryService{categories: categories, links: links}
}

// GetCategoryByID returns the category with the given id.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if id <= 0 {
		return nil, validationf("category id must be a positive integer, got %d", id)
	}
	c, err := s.categories.GetByID(ctx, uint64(id))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, notFound("category")
		}
		log.Printf("category service: get by id %d failed: %v", id, err)
		return nil, fmt.Errorf("could not load category: %w", err)
	}
	return c, nil
}

// GetCategoryByName returns the category with the given name.
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("category name is required")
	}
	c, err := s.categories.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, notFound("category")
		}
		log.Printf("category service: get by name %q failed: %v", name, err)
		return nil, fmt.Errorf("could not load category: %w", err)
	}
	return c, nil
}

// ListCategories returns every category.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	cats, err := s.categories.ListAll(ctx)
	if err != nil {
		log.Printf("category service: list failed: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	return cats, nil
}

// CreateCategory saves a new category after checking the name.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("category name is required")
	}
	c := &model.Category{Name: name}
	if err := s.categories.Create(ctx, c); err != nil {
		log.Printf("category service: create %q failed: %v", name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category and its film assignments.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationf("category id must be a positive integer, got %d", id)
	}
	if err := s.categories.DeleteByID(ctx, uint64(id)); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return notFound("category")
		}
		log.Printf("category service: delete %d failed: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}
	return nil
}

// AssignFilmCategory files a film under a category. Both ids must be
// positive; assigning an existing pair is a no-op.
func (s *CategoryService) AssignFilmCategory(ctx context.Context, filmID, categoryID int64) error {
	if filmID <= 0 || categoryID <= 0 {
		return validationf("film id and category id must be positive integers")
	}
	key := model.FilmCategoryKey{FilmID: uint64(filmID), CategoryID: uint64(categoryID)}
	if err := s.links.Link(ctx, key); err != nil {
		log.Printf("category service: link %s failed: %v", key.Hash(), err)
		return fmt.Errorf("could not assign category: %w", err)
	}
	return nil
}

// UnassignFilmCategory removes a film from a category. The pair must
// exist, otherwise a not-found error is returned.
func (s *CategoryService) UnassignFilmCategory(ctx context.Context, filmID, categoryID int64) error {
	if filmID <= 0 || categoryID <= 0 {
		return validationf("film id and category id must be positive integers")
	}
	key := model.FilmCategoryKey{FilmID: uint64(filmID), CategoryID: uint64(categoryID)}
	ok, err := s.links.Exists(ctx, key)
	if err != nil {
		log.Printf("category service: check %s failed: %v", key.Hash(), err)
		return fmt.Errorf("could not check assignment: %w", err)
	}
	if !ok {
		return notFound("film category assignment")
	}
	if err := s.links.Unlink(ctx, key); err != nil {
		log.Printf("category service: unlink %s failed: %v", key.Hash(), err)
		return fmt.Errorf("could not unassign category: %w", err)
	}
	return nil
}
