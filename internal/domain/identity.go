package domain

// Identity is the authenticated subject of a request, built from verified
// session-token claims. The role is trusted for the token's lifetime; a role
// change in storage only takes effect once the old token expires.
type Identity struct {
	ID   string
	Role Role
}
