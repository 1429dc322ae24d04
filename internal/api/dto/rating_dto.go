package dto

// SubmitRatingRequest payload for rating submission.
type SubmitRatingRequest struct {
	StoreID string `json:"storeId"`
	Value   int    `json:"value"`
}

// SubmitRatingResponse reports whether the rating was new or replaced.
type SubmitRatingResponse struct {
	Result string `json:"result"`
}

// StoreRatingResponse is the per-store rating view for a user. AverageRating
// is null when the store has no ratings yet; YourRating is null when the
// caller has not rated it.
type StoreRatingResponse struct {
	StoreName     string   `json:"storeName"`
	Address       string   `json:"address"`
	AverageRating *float64 `json:"averageRating"`
	YourRating    *int     `json:"yourRating"`
}
