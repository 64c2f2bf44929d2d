// Package ports declares the boundaries between the services and the
// managed backends. Adapters report backend failures as *errors.AppError
// values carrying the backend's status code and message.
package ports

import (
	"context"
	"time"

	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
)

// PostRepository stores posts keyed by (userID, postTitle).
type PostRepository interface {
	// FindByUser returns every post in the user's partition.
	FindByUser(ctx context.Context, userID string) ([]entities.Post, error)
	// Save writes the post, replacing any post with the same title.
	Save(ctx context.Context, userID string, post entities.Post) error
	// Delete removes the post with the given title.
	Delete(ctx context.Context, userID, postTitle string) error
}

// IdentityProvider manages user accounts and issues tokens.
type IdentityProvider interface {
	// CreateUser creates the account with an email attribute and no
	// welcome message.
	CreateUser(ctx context.Context, username, email string) error
	// SetPermanentPassword sets a non-temporary password on the account.
	SetPermanentPassword(ctx context.Context, username, password string) error
	// Authenticate performs username/password authentication.
	Authenticate(ctx context.Context, username, password string) (*entities.AuthTokens, error)
}

// Event is a notification emitted after a successful state change.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId,omitempty"`
	Subject    string    `json:"subject"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Event types
const (
	EventPostSaved      = "PostSaved"
	EventPostDeleted    = "PostDeleted"
	EventUserRegistered = "UserRegistered"
)

// EventPublisher delivers events. Failures are reported to the caller but
// never affect the outcome of the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopEventPublisher discards events. It is used when no event bus is
// configured.
type NoopEventPublisher struct{}

// Publish implements EventPublisher
func (NoopEventPublisher) Publish(context.Context, Event) error { return nil }
