package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/repository"
)

// memoryBackend emulates the database for service tests: one shared state all
// fake repositories read and write, with the same uniqueness semantics the
// real schema enforces.
type memoryBackend struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	stores  map[string]*domain.Store
	ratings map[ratingKey]int
}

type ratingKey struct {
	userID  string
	storeID string
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		users:   make(map[string]*domain.User),
		stores:  make(map[string]*domain.Store),
		ratings: make(map[ratingKey]int),
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

type fakeUserRepo struct {
	b *memoryBackend
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for _, existing := range f.b.users {
		if existing.Email == user.Email {
			return uniqueViolation()
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	f.b.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	if _, ok := f.b.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.b.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	user, ok := f.b.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for _, user := range f.b.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var result []domain.User
	for _, user := range f.b.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Name != nil && !strings.Contains(strings.ToLower(user.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return int64(len(f.b.users)), nil
}

type fakeStoreRepo struct {
	b *memoryBackend
}

func (f *fakeStoreRepo) Create(_ context.Context, store *domain.Store) error {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for _, existing := range f.b.stores {
		if existing.Email == store.Email {
			return uniqueViolation()
		}
	}
	if store.ID == "" {
		store.ID = uuid.NewString()
	}
	clone := *store
	f.b.stores[store.ID] = &clone
	return nil
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id string) (*domain.Store, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	store, ok := f.b.stores[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *store
	return &clone, nil
}

func (f *fakeStoreRepo) GetByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	for _, store := range f.b.stores {
		if store.OwnerID != nil && *store.OwnerID == ownerID {
			clone := *store
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStoreRepo) ListForViewer(_ context.Context, viewerID string) ([]repository.StoreWithRating, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var result []repository.StoreWithRating
	for _, store := range f.b.stores {
		item := repository.StoreWithRating{Store: *store, Average: f.b.averageLocked(store.ID)}
		if value, ok := f.b.ratings[ratingKey{userID: viewerID, storeID: store.ID}]; ok {
			v := value
			item.YourRating = &v
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Store.Name < result[j].Store.Name })
	return result, nil
}

func (f *fakeStoreRepo) List(_ context.Context, _ repository.StoreFilter) ([]repository.StoreWithRating, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var result []repository.StoreWithRating
	for _, store := range f.b.stores {
		result = append(result, repository.StoreWithRating{Store: *store, Average: f.b.averageLocked(store.ID)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Store.Name < result[j].Store.Name })
	return result, nil
}

func (f *fakeStoreRepo) Count(context.Context) (int64, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return int64(len(f.b.stores)), nil
}

type fakeRatingRepo struct {
	b *memoryBackend
}

func (f *fakeRatingRepo) Upsert(_ context.Context, userID, storeID string, value int) (domain.RatingResult, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	key := ratingKey{userID: userID, storeID: storeID}
	_, existed := f.b.ratings[key]
	f.b.ratings[key] = value
	if existed {
		return domain.RatingUpdated, nil
	}
	return domain.RatingInserted, nil
}

func (f *fakeRatingRepo) AverageFor(_ context.Context, storeID string) (domain.AggregateRating, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return f.b.averageLocked(storeID), nil
}

func (f *fakeRatingRepo) ForUserAndStore(_ context.Context, userID, storeID string) (int, bool, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	value, ok := f.b.ratings[ratingKey{userID: userID, storeID: storeID}]
	return value, ok, nil
}

func (f *fakeRatingRepo) ListForStore(_ context.Context, storeID string) ([]repository.StoreRater, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	var result []repository.StoreRater
	for key, value := range f.b.ratings {
		if key.storeID != storeID {
			continue
		}
		rater := repository.StoreRater{UserID: key.userID, Rating: value}
		if user, ok := f.b.users[key.userID]; ok {
			rater.Name = user.Name
			rater.Email = user.Email
		}
		result = append(result, rater)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (f *fakeRatingRepo) Count(context.Context) (int64, error) {
	f.b.mu.Lock()
	defer f.b.mu.Unlock()
	return int64(len(f.b.ratings)), nil
}

// averageLocked computes the one-decimal mean; callers hold b.mu.
func (b *memoryBackend) averageLocked(storeID string) domain.AggregateRating {
	var sum, count int
	for key, value := range b.ratings {
		if key.storeID == storeID {
			sum += value
			count++
		}
	}
	if count == 0 {
		return domain.AggregateRating{}
	}
	avg := math.Round(float64(sum)/float64(count)*10) / 10
	return domain.AggregateRating{Average: avg, Rated: true}
}

func (b *memoryBackend) ratingCount(storeID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for key := range b.ratings {
		if key.storeID == storeID {
			count++
		}
	}
	return count
}
