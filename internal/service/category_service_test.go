package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

// fakeCategoryStore is an in-memory categoryStore for unit tests.
type fakeCategoryStore struct {
	categories map[uint64]*model.Category
	nextID     uint64
}

func newFakeCategoryStore(cats ...*model.Category) *fakeCategoryStore {
	s := &fakeCategoryStore{categories: map[uint64]*model.Category{}, nextID: 1}
	for _, c := range cats {
		s.categories[c.ID] = c
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	return s
}

func (s *fakeCategoryStore) Create(_ context.Context, c *model.Category) error {
	c.ID = s.nextID
	s.nextID++
	s.categories[c.ID] = c
	return nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (s *fakeCategoryStore) GetByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (s *fakeCategoryStore) ListAll(_ context.Context) ([]*model.Category, error) {
	out := make([]*model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCategoryStore) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := s.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

// fakeLinkStore keys assignments by the composite key's hash.
type fakeLinkStore struct {
	links map[string]bool
}

func newFakeLinkStore() *fakeLinkStore { return &fakeLinkStore{links: map[string]bool{}} }

func (s *fakeLinkStore) Link(_ context.Context, key model.FilmCategoryKey) error {
	s.links[key.Hash()] = true
	return nil
}

func (s *fakeLinkStore) Unlink(_ context.Context, key model.FilmCategoryKey) error {
	delete(s.links, key.Hash())
	return nil
}

func (s *fakeLinkStore) Exists(_ context.Context, key model.FilmCategoryKey) (bool, error) {
	return s.links[key.Hash()], nil
}

func TestGetCategory_Validation(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore(), newFakeLinkStore())
	ctx := context.Background()

	_, err := svc.GetCategoryByID(ctx, 0)
	assert.True(t, IsValidation(err))

	_, err = svc.GetCategoryByName(ctx, "  ")
	assert.True(t, IsValidation(err))

	_, err = svc.GetCategoryByID(ctx, 8)
	assert.True(t, IsNotFound(err))
}

func TestGetCategoryByName(t *testing.T) {
	store := newFakeCategoryStore(&model.Category{ID: 2, Name: "Animation"})
	svc := NewCategoryService(store, newFakeLinkStore())

	c, err := svc.GetCategoryByName(context.Background(), "Animation")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.ID)
}

func TestAssignAndUnassignFilmCategory(t *testing.T) {
	links := newFakeLinkStore()
	svc := NewCategoryService(newFakeCategoryStore(), links)
	ctx := context.Background()

	assert.True(t, IsValidation(svc.AssignFilmCategory(ctx, 0, 2)))
	assert.True(t, IsValidation(svc.UnassignFilmCategory(ctx, 1, -2)))

	require.NoError(t, svc.AssignFilmCategory(ctx, 1, 2))
	ok, err := links.Exists(ctx, model.FilmCategoryKey{FilmID: 1, CategoryID: 2})
	require.NoError(t, err)
	assert.True(t, ok)

	// assigning the same pair again is a no-op, not an error
	require.NoError(t, svc.AssignFilmCategory(ctx, 1, 2))

	require.NoError(t, svc.UnassignFilmCategory(ctx, 1, 2))
	err = svc.UnassignFilmCategory(ctx, 1, 2)
	assert.True(t, IsNotFound(err), "unassigning a missing pair reports not found")
}
