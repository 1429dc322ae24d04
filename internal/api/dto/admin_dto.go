package dto

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// UserSummary is one account in a listing.
type UserSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

// UserDetailResponse is an account plus, for store owners, their store.
type UserDetailResponse struct {
	User  UserSummary   `json:"user"`
	Store *StoreSummary `json:"store,omitempty"`
}

// DashboardStatsResponse carries the admin dashboard counters.
type DashboardStatsResponse struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
