package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// StoreService owns store creation, listings and the owner dashboard.
type StoreService struct {
	stores     repository.StoreRepository
	users      repository.UserRepository
	ratings    repository.RatingRepository
	dispatcher events.Dispatcher
}

// NewStoreService builds the service.
func NewStoreService(stores repository.StoreRepository, users repository.UserRepository, ratings repository.RatingRepository, dispatcher events.Dispatcher) *StoreService {
	return &StoreService{stores: stores, users: users, ratings: ratings, dispatcher: dispatcher}
}

// CreateStoreInput carries the fields for an admin-created store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID *string
}

// OwnerDashboard is the store owner's view: their store, its aggregate rating
// and everyone who rated it.
type OwnerDashboard struct {
	Store   domain.Store
	Average domain.AggregateRating
	Raters  []repository.StoreRater
}

// Create registers a store. An owner, when given, must reference an existing
// account; ownerless stores are allowed and can be assigned later.
func (s *StoreService) Create(ctx context.Context, input CreateStoreInput) (*domain.Store, error) {
	if input.OwnerID != nil {
		if _, err := s.users.GetByID(ctx, *input.OwnerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("owner", map[string]any{"owner_id": *input.OwnerID})
			}
			return nil, err
		}
	}

	store := &domain.Store{
		OwnerID: input.OwnerID,
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStoreCreated,
			ActorID:   store.ID,
			Timestamp: time.Now(),
			Payload: events.StoreCreatedPayload{
				StoreID: store.ID,
				Name:    store.Name,
				OwnerID: store.OwnerID,
			},
		})
	}
	return store, nil
}

// ListForViewer returns all stores with their average and the viewer's own
// rating.
func (s *StoreService) ListForViewer(ctx context.Context, viewerID string) ([]repository.StoreWithRating, error) {
	return s.stores.ListForViewer(ctx, viewerID)
}

// AdminList returns stores matching the filter, each with its average.
func (s *StoreService) AdminList(ctx context.Context, filter repository.StoreFilter) ([]repository.StoreWithRating, error) {
	return s.stores.List(ctx, filter)
}

// Dashboard assembles the owner's store view. An owner without a store gets a
// not-found, matching the route contract.
func (s *StoreService) Dashboard(ctx context.Context, ownerID string) (*OwnerDashboard, error) {
	store, err := s.stores.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store for this owner", nil)
		}
		return nil, err
	}

	average, err := s.ratings.AverageFor(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	raters, err := s.ratings.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &OwnerDashboard{Store: *store, Average: average, Raters: raters}, nil
}
