package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

// fakeFilmStore is an in-memory filmStore for unit tests.
type fakeFilmStore struct {
	films  map[uint64]*model.Film
	nextID uint64
	open   map[uint64]bool // films with open rentals; DeleteByID refuses these
}

func newFakeFilmStore(films ...*model.Film) *fakeFilmStore {
	s := &fakeFilmStore{films: map[uint64]*model.Film{}, nextID: 1, open: map[uint64]bool{}}
	for _, f := range films {
		s.films[f.ID] = f
		if f.ID >= s.nextID {
			s.nextID = f.ID + 1
		}
	}
	return s
}

func (s *fakeFilmStore) Create(_ context.Context, f *model.Film) error {
	f.ID = s.nextID
	s.nextID++
	s.films[f.ID] = f
	return nil
}

func (s *fakeFilmStore) GetByID(_ context.Context, id uint64) (*model.Film, error) {
	f, ok := s.films[id]
	if !ok {
		return nil, repository.ErrFilmNotFound
	}
	return f, nil
}

func (s *fakeFilmStore) ListAll(_ context.Context) ([]*model.Film, error) {
	out := make([]*model.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeFilmStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(s.films)), nil
}

func (s *fakeFilmStore) Search(_ context.Context, q repository.FilmSearchQuery) ([]*model.Film, int64, error) {
	var out []*model.Film
	for _, f := range s.films {
		if q.Title == "" || f.Title == q.Title {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeFilmStore) Update(_ context.Context, f *model.Film) error {
	if _, ok := s.films[f.ID]; !ok {
		return repository.ErrFilmNotFound
	}
	s.films[f.ID] = f
	return nil
}

func (s *fakeFilmStore) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := s.films[id]; !ok {
		return repository.ErrFilmNotFound
	}
	if s.open[id] {
		return repository.ErrConflict
	}
	delete(s.films, id)
	return nil
}

// fixed join/count fakes for the detail view

type fixedCast []*model.Actor

func (c fixedCast) ListByFilm(context.Context, uint64) ([]*model.Actor, error) { return c, nil }

type fixedCategories []*model.Category

func (c fixedCategories) ListByFilm(context.Context, uint64) ([]*model.Category, error) {
	return c, nil
}

type fixedCounts struct{ total, avail int64 }

func (c fixedCounts) CountByFilm(context.Context, uint64) (int64, error) { return c.total, nil }
func (c fixedCounts) CountAvailableByFilm(context.Context, uint64) (int64, error) {
	return c.avail, nil
}

func validTestFilm(title string) *model.Film {
	return &model.Film{
		Title:           title,
		LanguageID:      1,
		RentalDuration:  3,
		RentalRateCents: 499,
		Rating:          "PG",
	}
}

func newTestFilmService(store *fakeFilmStore) *FilmService {
	return NewFilmService(store, fixedCast{}, fixedCategories{}, fixedCounts{})
}

func TestCreateFilm_RejectsMissingTitle(t *testing.T) {
	svc := newTestFilmService(newFakeFilmStore())

	f := validTestFilm("   ") // whitespace-only title is still missing
	err := svc.CreateFilm(context.Background(), f)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, f.ID, "rejected film must not be persisted")
}

func TestCreateFilm_PersistsAndAssignsID(t *testing.T) {
	store := newFakeFilmStore()
	svc := newTestFilmService(store)

	f := validTestFilm("ACADEMY DINOSAUR")
	require.NoError(t, svc.CreateFilm(context.Background(), f))
	assert.NotZero(t, f.ID)

	got, err := store.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACADEMY DINOSAUR", got.Title)
}

func TestCreateFilm_FieldRules(t *testing.T) {
	svc := newTestFilmService(newFakeFilmStore())
	ctx := context.Background()

	noDuration := validTestFilm("X")
	noDuration.RentalDuration = 0
	assert.True(t, IsValidation(svc.CreateFilm(ctx, noDuration)))

	noRate := validTestFilm("X")
	noRate.RentalRateCents = 0
	assert.True(t, IsValidation(svc.CreateFilm(ctx, noRate)))

	badRating := validTestFilm("X")
	badRating.Rating = "XX"
	assert.True(t, IsValidation(svc.CreateFilm(ctx, badRating)))

	// an empty rating falls back to G instead of failing
	noRating := validTestFilm("X")
	noRating.Rating = ""
	require.NoError(t, svc.CreateFilm(ctx, noRating))
	assert.Equal(t, "G", noRating.Rating)
}

func TestGetFilmByID_Validation(t *testing.T) {
	svc := newTestFilmService(newFakeFilmStore())

	_, err := svc.GetFilmByID(context.Background(), 0)
	assert.True(t, IsValidation(err))

	_, err = svc.GetFilmByID(context.Background(), 42)
	assert.True(t, IsNotFound(err))
}

func TestFilmDetailsByID(t *testing.T) {
	f := validTestFilm("AFRICAN EGG")
	f.ID = 1
	store := newFakeFilmStore(f)

	svc := NewFilmService(store,
		fixedCast{{ID: 5, FirstName: "GARY", LastName: "PHOENIX"}},
		fixedCategories{{ID: 2, Name: "Family"}},
		fixedCounts{total: 4, avail: 3},
	)

	d, err := svc.FilmDetailsByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "AFRICAN EGG", d.Film.Title)
	require.Len(t, d.Actors, 1)
	require.Len(t, d.Categories, 1)
	assert.Equal(t, int64(4), d.TotalCopies)
	assert.Equal(t, int64(3), d.AvailableCopies)
}

func TestDeleteFilm_ConflictPassesThrough(t *testing.T) {
	f := validTestFilm("ALIEN CENTER")
	f.ID = 7
	store := newFakeFilmStore(f)
	store.open[7] = true
	svc := newTestFilmService(store)

	err := svc.DeleteFilm(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConflict)

	store.open[7] = false
	require.NoError(t, svc.DeleteFilm(context.Background(), 7))
	assert.True(t, IsNotFound(svc.DeleteFilm(context.Background(), 7)))
}
