package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/video-rental-store/internal/model"
	"github.com/iliyamo/video-rental-store/internal/repository"
)

// fakeActorStore is an in-memory actorStore for unit tests.
type fakeActorStore struct {
	actors map[uint64]*model.Actor
	nextID uint64
	err    error // forced error for every call when set
}

func newFakeActorStore(actors ...*model.Actor) *fakeActorStore {
	s := &fakeActorStore{actors: map[uint64]*model.Actor{}, nextID: 1}
	for _, a := range actors {
		s.actors[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *fakeActorStore) Create(_ context.Context, a *model.Actor) error {
	if s.err != nil {
		return s.err
	}
	a.ID = s.nextID
	s.nextID++
	s.actors[a.ID] = a
	return nil
}

func (s *fakeActorStore) GetByID(_ context.Context, id uint64) (*model.Actor, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.actors[id]
	if !ok {
		return nil, repository.ErrActorNotFound
	}
	return a, nil
}

func (s *fakeActorStore) ListAll(_ context.Context) ([]*model.Actor, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*model.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeActorStore) ListByFullName(_ context.Context, first, last string) ([]*model.Actor, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*model.Actor
	for _, a := range s.actors {
		if a.FirstName == first && a.LastName == last {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeActorStore) DeleteByID(_ context.Context, id uint64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.actors[id]; !ok {
		return repository.ErrActorNotFound
	}
	delete(s.actors, id)
	return nil
}

func TestGetActorByID_RejectsNonPositiveIDs(t *testing.T) {
	svc := NewActorService(newFakeActorStore())

	for _, id := range []int64{0, -1} {
		_, err := svc.GetActorByID(context.Background(), id)
		require.Error(t, err)
		assert.True(t, IsValidation(err), "id %d should be rejected before any I/O", id)
	}
}

func TestGetActorByID_FoundAndNotFound(t *testing.T) {
	store := newFakeActorStore(&model.Actor{ID: 1, FirstName: "PENELOPE", LastName: "GUINESS"})
	svc := NewActorService(store)

	a, err := svc.GetActorByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, "PENELOPE", a.FirstName)

	_, err = svc.GetActorByID(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestGetActorsByFullName_RequiresBothParts(t *testing.T) {
	svc := NewActorService(newFakeActorStore())

	_, err := svc.GetActorsByFullName(context.Background(), "", "Doe")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	_, err = svc.GetActorsByFullName(context.Background(), "John", "   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestGetActorsByFullName_Matches(t *testing.T) {
	store := newFakeActorStore(
		&model.Actor{ID: 1, FirstName: "NICK", LastName: "WAHLBERG"},
		&model.Actor{ID: 2, FirstName: "NICK", LastName: "STALLONE"},
	)
	svc := NewActorService(store)

	actors, err := svc.GetActorsByFullName(context.Background(), "NICK", "WAHLBERG")
	require.NoError(t, err)
	require.Len(t, actors, 1)
	assert.Equal(t, uint64(1), actors[0].ID)
}

func TestCreateActor_WrapsStoreErrors(t *testing.T) {
	store := newFakeActorStore()
	store.err = errors.New("connection reset")
	svc := NewActorService(store)

	_, err := svc.CreateActor(context.Background(), "JOHN", "DOE")
	require.Error(t, err)
	// internal failures are wrapped, not surfaced as validation/not-found
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, store.err)
}

func TestDeleteActor(t *testing.T) {
	store := newFakeActorStore(&model.Actor{ID: 3, FirstName: "ED", LastName: "CHASE"})
	svc := NewActorService(store)

	require.Error(t, svc.DeleteActor(context.Background(), -5))
	assert.True(t, IsValidation(svc.DeleteActor(context.Background(), 0)))

	require.NoError(t, svc.DeleteActor(context.Background(), 3))
	err := svc.DeleteActor(context.Background(), 3)
	assert.True(t, IsNotFound(err))
}
