package dto

// StoreSummary is one store in a listing, with its aggregate and optionally
// the viewer's own rating.
type StoreSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email,omitempty"`
	Address       string   `json:"address"`
	AverageRating *float64 `json:"averageRating"`
	YourRating    *int     `json:"yourRating,omitempty"`
}

// CreateStoreRequest payload for admin store creation.
type CreateStoreRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	OwnerID *string `json:"ownerId,omitempty"`
}

// RaterInfo is one user's rating on the owner dashboard.
type RaterInfo struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Rating int    `json:"rating"`
}

// OwnerDashboardResponse is the store owner's view of their store.
type OwnerDashboardResponse struct {
	Store         StoreSummary `json:"store"`
	AverageRating *float64     `json:"averageRating"`
	Raters        []RaterInfo  `json:"raters"`
}
