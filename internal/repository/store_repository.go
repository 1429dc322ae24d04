package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// StoreFilter captures admin listing parameters for stores.
type StoreFilter struct {
	Name      *string
	Email     *string
	Address   *string
	SortBy    string
	SortOrder string
}

// StoreWithRating is a store joined with its aggregate rating and, when a
// viewer is given, that viewer's own rating.
type StoreWithRating struct {
	Store      domain.Store
	Average    domain.AggregateRating
	YourRating *int
}

// StoreRepository encapsulates store persistence.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	ListForViewer(ctx context.Context, viewerID string) ([]StoreWithRating, error)
	List(ctx context.Context, filter StoreFilter) ([]StoreWithRating, error)
	Count(ctx context.Context) (int64, error)
}

type storeRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository instantiates repository.
func NewStoreRepository(pool *pgxpool.Pool) StoreRepository {
	return &storeRepository{pool: pool}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	if store.ID == "" {
		store.ID = uuid.NewString()
	}

	const query = `
        INSERT INTO stores (id, owner_id, name, email, address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		store.ID,
		store.OwnerID,
		store.Name,
		store.Email,
		store.Address,
	).Scan(&store.CreatedAt, &store.UpdatedAt)
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const query = `
        SELECT id, owner_id, name, email, address, created_at, updated_at
        FROM stores WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *storeRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	const query = `
        SELECT id, owner_id, name, email, address, created_at, updated_at
        FROM stores WHERE owner_id=$1`
	return r.fetchSingle(ctx, query, ownerID)
}

func (r *storeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Store, error) {
	var store domain.Store
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&store.ID,
		&store.OwnerID,
		&store.Name,
		&store.Email,
		&store.Address,
		&store.CreatedAt,
		&store.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &store, nil
}

// ListForViewer returns every store with its average rating and the viewer's
// own rating, resolved in one query.
func (r *storeRepository) ListForViewer(ctx context.Context, viewerID string) ([]StoreWithRating, error) {
	const query = `
        SELECT s.id, s.owner_id, s.name, s.email, s.address, s.created_at, s.updated_at,
               (SELECT ROUND(AVG(rating)::numeric, 1) FROM ratings WHERE store_id = s.id) AS avg_rating,
               (SELECT rating FROM ratings WHERE store_id = s.id AND user_id = $1) AS your_rating
        FROM stores s
        ORDER BY s.name ASC`

	rows, err := r.pool.Query(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStoresWithRatings(rows, true)
}

func (r *storeRepository) List(ctx context.Context, filter StoreFilter) ([]StoreWithRating, error) {
	base := `
        SELECT s.id, s.owner_id, s.name, s.email, s.address, s.created_at, s.updated_at,
               (SELECT ROUND(AVG(rating)::numeric, 1) FROM ratings WHERE store_id = s.id) AS avg_rating
        FROM stores s`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Name != nil {
		args = append(args, "%"+*filter.Name+"%")
		clauses = append(clauses, fmt.Sprintf("s.name ILIKE $%d", len(args)))
	}
	if filter.Email != nil {
		args = append(args, "%"+*filter.Email+"%")
		clauses = append(clauses, fmt.Sprintf("s.email ILIKE $%d", len(args)))
	}
	if filter.Address != nil {
		args = append(args, "%"+*filter.Address+"%")
		clauses = append(clauses, fmt.Sprintf("s.address ILIKE $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s",
		base, strings.Join(clauses, " AND "),
		"s."+sortColumn(filter.SortBy, []string{"name", "email", "address"}, "name"),
		sortDirection(filter.SortOrder),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStoresWithRatings(rows, false)
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count)
	return count, err
}

func scanStoresWithRatings(rows pgx.Rows, withViewer bool) ([]StoreWithRating, error) {
	var result []StoreWithRating
	for rows.Next() {
		var item StoreWithRating
		var avg *float64
		dest := []any{
			&item.Store.ID,
			&item.Store.OwnerID,
			&item.Store.Name,
			&item.Store.Email,
			&item.Store.Address,
			&item.Store.CreatedAt,
			&item.Store.UpdatedAt,
			&avg,
		}
		if withViewer {
			dest = append(dest, &item.YourRating)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if avg != nil {
			item.Average = domain.AggregateRating{Average: *avg, Rated: true}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
