package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// RatingService owns rating submission and the per-store rating view.
type RatingService struct {
	ratings    repository.RatingRepository
	stores     repository.StoreRepository
	dispatcher events.Dispatcher
}

// NewRatingService builds the service.
func NewRatingService(ratings repository.RatingRepository, stores repository.StoreRepository, dispatcher events.Dispatcher) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, dispatcher: dispatcher}
}

// StoreRatingInfo is the rating view of one store for one user.
type StoreRatingInfo struct {
	StoreName  string
	Address    string
	Average    domain.AggregateRating
	YourRating *int
}

// Submit records the user's rating for a store. Resubmission replaces the
// previous value; the storage layer's conditional write guarantees at most one
// row per (user, store) even under concurrent submissions.
func (s *RatingService) Submit(ctx context.Context, userID, storeID string, value int) (domain.RatingResult, error) {
	if value < domain.RatingMin || value > domain.RatingMax {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("rating must be between %d and %d", domain.RatingMin, domain.RatingMax),
			map[string]any{"rating": value},
		)
	}

	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("store", map[string]any{"store_id": storeID})
		}
		return "", err
	}

	result, err := s.ratings.Upsert(ctx, userID, storeID, value)
	if err != nil {
		return "", err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRatingSubmitted,
			ActorID:   userID,
			Timestamp: time.Now(),
			Payload: events.RatingSubmittedPayload{
				StoreID: storeID,
				Value:   value,
				Result:  result,
			},
		})
	}
	return result, nil
}

// StoreRating returns a store's name, address, aggregate rating and the
// caller's own rating.
func (s *RatingService) StoreRating(ctx context.Context, userID, storeID string) (*StoreRatingInfo, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("store", map[string]any{"store_id": storeID})
		}
		return nil, err
	}

	average, err := s.ratings.AverageFor(ctx, storeID)
	if err != nil {
		return nil, err
	}

	info := &StoreRatingInfo{
		StoreName: store.Name,
		Address:   store.Address,
		Average:   average,
	}

	value, ok, err := s.ratings.ForUserAndStore(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if ok {
		info.YourRating = &value
	}
	return info, nil
}
