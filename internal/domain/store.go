package domain

import "time"

// Store is a rateable storefront. OwnerID is optional; admins may register a
// store before assigning it to a store_owner account.
type Store struct {
	ID        string
	OwnerID   *string
	Name      string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
