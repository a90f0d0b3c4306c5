package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/repository"
	"github.com/iliyamo/video-rental-store/internal/service"
)

// fakeFilms is an in-memory film store backing the catalog handler tests.
type fakeFilms struct {
	films map[uint64]*model.Film
}

func (s *fakeFilms) Create(_ context.Context, f *model.Film) error {
	s.films[f.ID] = f
	return nil
}

func (s *fakeFilms) GetByID(_ context.Context, id uint64) (*model.Film, error) {
	f, ok := s.films[id]
	if !ok {
		return nil, repository.ErrFilmNotFound
	}
	return f, nil
}

func (s *fakeFilms) ListAll(_ context.Context) ([]*model.Film, error) {
	out := make([]*model.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, f)
	}
	return out, nil
}

func (s *fakeFilms) CountAll(_ context.Context) (int64, error) { return int64(len(s.films)), nil }

func (s *fakeFilms) Search(_ context.Context, q repository.FilmSearchQuery) ([]*model.Film, int64, error) {
	var out []*model.Film
	for _, f := range s.films {
		if q.Title == "" || f.Title == q.Title {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (s *fakeFilms) Update(_ context.Context, f *model.Film) error {
	if _, ok := s.films[f.ID]; !ok {
		return repository.ErrFilmNotFound
	}
	s.films[f.ID] = f
	return nil
}

func (s *fakeFilms) DeleteByID(_ context.Context, id uint64) error {
	if _, ok := s.films[id]; !ok {
		return repository.ErrFilmNotFound
	}
	delete(s.films, id)
	return nil
}

type fakeCast struct{}

func (fakeCast) ListByFilm(context.Context, uint64) ([]*model.Actor, error) {
	return []*model.Actor{{ID: 1, FirstName: "PENELOPE", LastName: "GUINESS"}}, nil
}

type fakeGenres struct{}

func (fakeGenres) ListByFilm(context.Context, uint64) ([]*model.Category, error) {
	return []*model.Category{{ID: 6, Name: "Documentary"}}, nil
}

type fakeCounts struct{ total, free int64 }

func (c fakeCounts) CountByFilm(context.Context, uint64) (int64, error)          { return c.total, nil }
func (c fakeCounts) CountAvailableByFilm(context.Context, uint64) (int64, error) { return c.free, nil }

func newTestCatalog(films ...*model.Film) *CatalogHandler {
	store := &fakeFilms{films: map[uint64]*model.Film{}}
	for _, f := range films {
		store.films[f.ID] = f
	}
	filmSvc := service.NewFilmService(store, fakeCast{}, fakeGenres{}, fakeCounts{total: 3, free: 2})
	return &CatalogHandler{Films: filmSvc}
}

func catalogFilm(id uint64, title string) *model.Film {
	return &model.Film{
		ID:              id,
		Title:           title,
		LanguageID:      1,
		RentalDuration:  6,
		RentalRateCents: 99,
		Rating:          "PG",
	}
}

func TestListFilms(t *testing.T) {
	h := newTestCatalog(catalogFilm(1, "ACADEMY DINOSAUR"), catalogFilm(2, "ACE GOLDFINGER"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/films", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListFilms(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Films     []*model.Film `json:"films"`
		FilmCount int64         `json:"filmCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Films, 2)
	assert.EqualValues(t, 2, body.FilmCount)
}

func TestFilmDetails(t *testing.T) {
	h := newTestCatalog(catalogFilm(1, "AFRICAN EGG"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/films/details?film_id=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.FilmDetails(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body service.FilmDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Film)
	assert.Equal(t, "AFRICAN EGG", body.Film.Title)
	assert.Len(t, body.Actors, 1)
	assert.Len(t, body.Categories, 1)
	assert.EqualValues(t, 3, body.TotalCopies)
	assert.EqualValues(t, 2, body.AvailableCopies)
}

func TestFilmDetailsBadID(t *testing.T) {
	h := newTestCatalog()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/films/details?film_id=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.FilmDetails(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilmDetailsNotFound(t *testing.T) {
	h := newTestCatalog()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/films/details?film_id=99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.FilmDetails(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAccountID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	// JWT claims decode numbers as float64; uint64 comes from tests and
	// internal callers.
	for _, v := range []interface{}{float64(42), uint64(42), int64(42), "42"} {
		c := e.NewContext(req, httptest.NewRecorder())
		c.Set("account_id", v)
		id, err := getAccountID(c)
		require.NoError(t, err)
		assert.EqualValues(t, 42, id)
	}

	c := e.NewContext(req, httptest.NewRecorder())
	_, err := getAccountID(c)
	assert.Error(t, err)
}
