package domain

import "time"

// Rating bounds for a submission.
const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is a single user's score for a store. At most one row exists per
// (UserID, StoreID); a resubmission replaces the value in place.
type Rating struct {
	ID        string
	UserID    string
	StoreID   string
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingResult tells a submitter whether their rating was new or replaced an
// earlier one.
type RatingResult string

const (
	RatingInserted RatingResult = "inserted"
	RatingUpdated  RatingResult = "updated"
)

// AggregateRating is the mean of a store's ratings rounded to one decimal.
// Rated=false marks a store with no ratings yet; it is never rendered as a
// numeric 0, which would be indistinguishable from a low average.
type AggregateRating struct {
	Average float64
	Rated   bool
}

// Ptr returns the average for JSON rendering, nil when the store has no
// ratings.
func (a AggregateRating) Ptr() *float64 {
	if !a.Rated {
		return nil
	}
	v := a.Average
	return &v
}
