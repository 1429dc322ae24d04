package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// UserService owns the admin-facing account listings.
type UserService struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	ratings repository.RatingRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, stores repository.StoreRepository, ratings repository.RatingRepository) *UserService {
	return &UserService{users: users, stores: stores, ratings: ratings}
}

// UserDetail is an account plus, for store owners, their store and its
// aggregate rating.
type UserDetail struct {
	User    domain.User
	Store   *domain.Store
	Average domain.AggregateRating
}

// List returns accounts matching the filter.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.List(ctx, filter)
}

// Detail fetches one account. Store owners carry their store and its average;
// an owner without a store just has no store section.
func (s *UserService) Detail(ctx context.Context, id string) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}

	detail := &UserDetail{User: *user}
	if user.Role != domain.RoleStoreOwner {
		return detail, nil
	}

	store, err := s.stores.GetByOwner(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return detail, nil
		}
		return nil, err
	}
	detail.Store = store

	average, err := s.ratings.AverageFor(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	detail.Average = average
	return detail, nil
}
