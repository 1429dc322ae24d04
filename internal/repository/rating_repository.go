package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// StoreRater is one user's rating of a store joined with their account info,
// shown on the owner dashboard.
type StoreRater struct {
	UserID string
	Name   string
	Email  string
	Rating int
}

// RatingRepository enforces the one-rating-per-(user,store) invariant at the
// storage layer.
type RatingRepository interface {
	Upsert(ctx context.Context, userID, storeID string, value int) (domain.RatingResult, error)
	AverageFor(ctx context.Context, storeID string) (domain.AggregateRating, error)
	ForUserAndStore(ctx context.Context, userID, storeID string) (int, bool, error)
	ListForStore(ctx context.Context, storeID string) ([]StoreRater, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository instantiates repository.
func NewRatingRepository(pool *pgxpool.Pool) RatingRepository {
	return &ratingRepository{pool: pool}
}

// Upsert inserts or replaces the caller's rating in a single conditional
// write keyed by the (user_id, store_id) uniqueness constraint. Concurrent
// submissions for the same pair are serialized by the database; exactly one
// row survives and commit order decides the winner. xmax = 0 is only true for
// a freshly inserted row, which distinguishes insert from update without a
// second round trip.
func (r *ratingRepository) Upsert(ctx context.Context, userID, storeID string, value int) (domain.RatingResult, error) {
	const query = `
        INSERT INTO ratings (id, user_id, store_id, rating)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, store_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
        RETURNING (xmax = 0) AS inserted`

	var inserted bool
	if err := r.pool.QueryRow(ctx, query, uuid.NewString(), userID, storeID, value).Scan(&inserted); err != nil {
		return "", err
	}
	if inserted {
		return domain.RatingInserted, nil
	}
	return domain.RatingUpdated, nil
}

// AverageFor computes the mean rating rounded to one decimal. A store with no
// ratings yields Rated=false, never a numeric zero.
func (r *ratingRepository) AverageFor(ctx context.Context, storeID string) (domain.AggregateRating, error) {
	const query = `SELECT ROUND(AVG(rating)::numeric, 1) FROM ratings WHERE store_id=$1`

	var avg *float64
	if err := r.pool.QueryRow(ctx, query, storeID).Scan(&avg); err != nil {
		return domain.AggregateRating{}, err
	}
	if avg == nil {
		return domain.AggregateRating{}, nil
	}
	return domain.AggregateRating{Average: *avg, Rated: true}, nil
}

func (r *ratingRepository) ForUserAndStore(ctx context.Context, userID, storeID string) (int, bool, error) {
	const query = `SELECT rating FROM ratings WHERE user_id=$1 AND store_id=$2`

	var value int
	err := r.pool.QueryRow(ctx, query, userID, storeID).Scan(&value)
	if err == pgx.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func (r *ratingRepository) ListForStore(ctx context.Context, storeID string) ([]StoreRater, error) {
	const query = `
        SELECT u.id, u.name, u.email, r.rating
        FROM ratings r
        JOIN users u ON u.id = r.user_id
        WHERE r.store_id=$1
        ORDER BY u.name ASC`

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StoreRater
	for rows.Next() {
		var rater StoreRater
		if err := rows.Scan(&rater.UserID, &rater.Name, &rater.Email, &rater.Rating); err != nil {
			return nil, err
		}
		result = append(result, rater)
	}
	return result, rows.Err()
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count)
	return count, err
}
