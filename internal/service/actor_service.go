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

// actorStore is the slice of ActorRepo the service depends on. Taking an
// interface keeps the service testable with an in-memory fake.
type actorStore interface {
	Create(ctx context.Context, a *model.Actor) error
	GetByID(ctx context.Context, id uint64) (*model.Actor, error)
	ListAll(ctx context.Context) ([]*model.Actor, error)
	ListByFullName(ctx context.Context, first, last string) ([]*model.Actor, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// ActorService validates inputs and delegates to the actor repository.
type ActorService struct {
	actors actorStore
}

// NewActorService constructs an ActorService.
func NewActorService(actors actorStore) *ActorService {
	return &ActorService{actors: actors}
}

// GetActorByID returns the actor with the given id. IDs must be
// positive; zero and negative values are rejected before any I/O.
func (s *ActorService) GetActorByID(ctx context.Context, id int64) (*model.Actor, error) {
	if id <= 0 {
		return nil, validationf("actor id must be a positive integer, got %d", id)
	}
	a, err := s.actors.GetByID(ctx, uint64(id))
	if err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return nil, notFound("actor")
		}
		log.Printf("actor service: get by id %d failed: %v", id, err)
		return nil, fmt.Errorf("could not load actor: %w", err)
	}
	return a, nil
}

// GetActorsByFullName returns every actor with the given first and last
// name. Both parts are required and must be non-empty after trimming.
func (s *ActorService) GetActorsByFullName(ctx context.Context, first, last string) ([]*model.Actor, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" {
		return nil, validationf("first name is required")
	}
	if last == "" {
		return nil, validationf("last name is required")
	}
	actors, err := s.actors.ListByFullName(ctx, first, last)
	if err != nil {
		log.Printf("actor service: list by name %q %q failed: %v", first, last, err)
		return nil, fmt.Errorf("could not search actors: %w", err)
	}
	return actors, nil
}

// ListActors returns every actor in the catalog.
func (s *ActorService) ListActors(ctx context.Context) ([]*model.Actor, error) {
	actors, err := s.actors.ListAll(ctx)
	if err != nil {
		log.Printf("actor service: list failed: %v", err)
		return nil, fmt.Errorf("could not list actors: %w", err)
	}
	return actors, nil
}

// CreateActor saves a new actor after checking both name parts.
func (s *ActorService) CreateActor(ctx context.Context, first, last string) (*model.Actor, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return nil, validationf("first and last name are required")
	}
	a := &model.Actor{FirstName: first, LastName: last}
	if err := s.actors.Create(ctx, a); err != nil {
		log.Printf("actor service: create failed: %v", err)
		return nil, fmt.Errorf("could not create actor: %w", err)
	}
	return a, nil
}

// DeleteActor removes an actor and its film credits.
func (s *ActorService) DeleteActor(ctx context.Context, id int64) error {
	if id <= 0 {
		return validationf("actor id must be a positive integer, got %d", id)
	}
	if err := s.actors.DeleteByID(ctx, uint64(id)); err != nil {
		if errors.Is(err, repository.ErrActorNotFound) {
			return notFound("actor")
		}
		log.Printf("actor service: delete %d failed: %v", id, err)
		return fmt.Errorf("could not delete actor: %w", err)
	}
	return nil
}
