package service

import (
	"context"

	"github.com/spec-kit/store-rating-service/internal/repository"
)

// DashboardService assembles platform-wide counters for admins.
type DashboardService struct {
	users   repository.UserRepository
	stores  repository.StoreRepository
	ratings repository.RatingRepository
}

// NewDashboardService builds the service.
func NewDashboardService(users repository.UserRepository, stores repository.StoreRepository, ratings repository.RatingRepository) *DashboardService {
	return &DashboardService{users: users, stores: stores, ratings: ratings}
}

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalUsers   int64
	TotalStores  int64
	TotalRatings int64
}

// Stats counts users, stores and ratings.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
}
