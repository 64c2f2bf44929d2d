package services

import (
	"context"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of ports.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) FindByUser(ctx context.Context, userID string) ([]entities.Post, error) {
	args := m.Called(ctx, userID)
	if posts := args.Get(0); posts != nil {
		return posts.([]entities.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) Save(ctx context.Context, userID string, post entities.Post) error {
	args := m.Called(ctx, userID, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, userID, postTitle string) error {
	args := m.Called(ctx, userID, postTitle)
	return args.Error(0)
}

// MockIdentityProvider is a mock implementation of ports.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateUser(ctx context.Context, username, email string) error {
	args := m.Called(ctx, username, email)
	return args.Error(0)
}

func (m *MockIdentityProvider) SetPermanentPassword(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockIdentityProvider) Authenticate(ctx context.Context, username, password string) (*entities.AuthTokens, error) {
	args := m.Called(ctx, username, password)
	if tokens := args.Get(0); tokens != nil {
		return tokens.(*entities.AuthTokens), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(eventType, subject string) interface{} {
	return mock.MatchedBy(func(e ports.Event) bool {
		return e.Type == eventType && e.Subject == subject && !e.OccurredAt.IsZero()
	})
}
