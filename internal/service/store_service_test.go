package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/repository"
	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

func newStoreFixture(t *testing.T) (*StoreService, *memoryBackend) {
	t.Helper()
	backend := newMemoryBackend()
	svc := NewStoreService(
		&fakeStoreRepo{b: backend},
		&fakeUserRepo{b: backend},
		&fakeRatingRepo{b: backend},
		events.NewInMemoryDispatcher(),
	)
	return svc, backend
}

func TestStoreService_Create(t *testing.T) {
	svc, backend := newStoreFixture(t)
	seedUser(backend, "owner-1", "Olive Owner", domain.RoleStoreOwner)
	ctx := context.Background()

	ownerID := "owner-1"
	store, err := svc.Create(ctx, CreateStoreInput{
		Name:    "Corner Store",
		Email:   "corner@example.com",
		Address: "1 Main St",
		OwnerID: &ownerID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, store.ID)
	require.NotNil(t, store.OwnerID)
	assert.Equal(t, "owner-1", *store.OwnerID)
}

func TestStoreService_CreateUnknownOwner(t *testing.T) {
	svc, _ := newStoreFixture(t)

	missing := "nobody"
	_, err := svc.Create(context.Background(), CreateStoreInput{
		Name:    "Corner Store",
		Email:   "corner@example.com",
		OwnerID: &missing,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestStoreService_CreateDuplicateEmail(t *testing.T) {
	svc, _ := newStoreFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStoreInput{Name: "Corner Store", Email: "corner@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateStoreInput{Name: "Another Store", Email: "corner@example.com"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestStoreService_ListForViewer(t *testing.T) {
	svc, backend := newStoreFixture(t)
	seedStore(backend, "s1", "alpha")
	seedStore(backend, "s2", "beta")
	backend.ratings[ratingKey{userID: "u1", storeID: "s1"}] = 4
	backend.ratings[ratingKey{userID: "u2", storeID: "s1"}] = 2

	stores, err := svc.ListForViewer(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, stores, 2)

	rated := stores[0]
	assert.Equal(t, "alpha", rated.Store.Name)
	assert.True(t, rated.Average.Rated)
	assert.Equal(t, 3.0, rated.Average.Average)
	require.NotNil(t, rated.YourRating)
	assert.Equal(t, 4, *rated.YourRating)

	unrated := stores[1]
	assert.False(t, unrated.Average.Rated)
	assert.Nil(t, unrated.YourRating)
}

func TestStoreService_Dashboard(t *testing.T) {
	svc, backend := newStoreFixture(t)
	seedUser(backend, "owner-1", "Olive Owner", domain.RoleStoreOwner)
	seedUser(backend, "u1", "Alice", domain.RoleUser)
	seedUser(backend, "u2", "Bob", domain.RoleUser)
	owner := "owner-1"
	backend.stores["s1"] = &domain.Store{ID: "s1", OwnerID: &owner, Name: "Corner Store", Email: "corner@example.com"}
	backend.ratings[ratingKey{userID: "u1", storeID: "s1"}] = 5
	backend.ratings[ratingKey{userID: "u2", storeID: "s1"}] = 4

	dashboard, err := svc.Dashboard(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Corner Store", dashboard.Store.Name)
	assert.Equal(t, 4.5, dashboard.Average.Average)
	require.Len(t, dashboard.Raters, 2)
	assert.Equal(t, "Alice", dashboard.Raters[0].Name)
	assert.Equal(t, 5, dashboard.Raters[0].Rating)
}

func TestStoreService_DashboardNoStore(t *testing.T) {
	svc, backend := newStoreFixture(t)
	seedUser(backend, "owner-1", "Olive Owner", domain.RoleStoreOwner)

	_, err := svc.Dashboard(context.Background(), "owner-1")
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestUserService_Detail(t *testing.T) {
	backend := newMemoryBackend()
	svc := NewUserService(&fakeUserRepo{b: backend}, &fakeStoreRepo{b: backend}, &fakeRatingRepo{b: backend})
	seedUser(backend, "owner-1", "Olive Owner", domain.RoleStoreOwner)
	owner := "owner-1"
	backend.stores["s1"] = &domain.Store{ID: "s1", OwnerID: &owner, Name: "Corner Store", Email: "corner@example.com"}
	backend.ratings[ratingKey{userID: "u1", storeID: "s1"}] = 4

	detail, err := svc.Detail(context.Background(), "owner-1")
	require.NoError(t, err)
	require.NotNil(t, detail.Store)
	assert.Equal(t, "Corner Store", detail.Store.Name)
	assert.True(t, detail.Average.Rated)
	assert.Equal(t, 4.0, detail.Average.Average)

	_, err = svc.Detail(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestDashboardService_Stats(t *testing.T) {
	backend := newMemoryBackend()
	svc := NewDashboardService(&fakeUserRepo{b: backend}, &fakeStoreRepo{b: backend}, &fakeRatingRepo{b: backend})
	seedUser(backend, "u1", "Alice", domain.RoleUser)
	seedUser(backend, "u2", "Bob", domain.RoleUser)
	seedStore(backend, "s1", "alpha")
	backend.ratings[ratingKey{userID: "u1", storeID: "s1"}] = 3

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalStores)
	assert.Equal(t, int64(1), stats.TotalRatings)
}

func TestUserService_ListFilterByRole(t *testing.T) {
	backend := newMemoryBackend()
	svc := NewUserService(&fakeUserRepo{b: backend}, &fakeStoreRepo{b: backend}, &fakeRatingRepo{b: backend})
	seedUser(backend, "u1", "Alice", domain.RoleUser)
	seedUser(backend, "a1", "Root Admin", domain.RoleAdmin)

	role := domain.RoleAdmin
	users, err := svc.List(context.Background(), repository.UserFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Root Admin", users[0].Name)
}
