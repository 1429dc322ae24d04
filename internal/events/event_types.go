package events

import (
	"time"

	"github.com/spec-kit/store-rating-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventStoreCreated    EventType = "store_created"
	EventRatingSubmitted EventType = "rating_submitted"
)

// Event represents a domain event emitted by services. ActorID is the account
// that triggered it.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// StoreCreatedPayload payload.
type StoreCreatedPayload struct {
	StoreID string  `json:"store_id"`
	Name    string  `json:"name"`
	OwnerID *string `json:"owner_id,omitempty"`
}

// RatingSubmittedPayload payload.
type RatingSubmittedPayload struct {
	StoreID string              `json:"store_id"`
	Value   int                 `json:"value"`
	Result  domain.RatingResult `json:"result"`
}
