package services

import (
	"context"
	"net/http"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"go.uber.org/zap"
)

// UserService registers and authenticates users against the identity
// provider.
type UserService struct {
	identity  ports.IdentityProvider
	publisher ports.EventPublisher
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	identity ports.IdentityProvider,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		identity:  identity,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Register creates the account and then sets its permanent password.
// The two calls are not atomic: when the password step fails the account
// created by the first step is left in place and the password failure is
// returned.
func (s *UserService) Register(ctx context.Context, user entities.User) *common.GenericResponse {
	resp := common.NewResponse(http.StatusCreated)

	if err := s.identity.CreateUser(ctx, user.Username, user.Email); err != nil {
		s.fail(resp, err)
		return resp
	}

	if err := s.identity.SetPermanentPassword(ctx, user.Username, user.Password); err != nil {
		s.logger.Warn("User created without a permanent password",
			zap.String("username", user.Username),
		)
		s.fail(resp, err)
		return resp
	}

	publish(ctx, s.publisher, s.logger, ports.EventUserRegistered, "", user.Username)
	return resp
}

// Login authenticates with username and password and returns the issued
// tokens with status 200.
func (s *UserService) Login(ctx context.Context, user entities.User) *common.AccessResponse {
	tokens, err := s.identity.Authenticate(ctx, user.Username, user.Password)
	if err != nil {
		resp := &common.AccessResponse{}
		s.fail(&resp.GenericResponse, err)
		return resp
	}

	return &common.AccessResponse{
		GenericResponse:  *common.NewResponse(http.StatusOK),
		TokenType:        tokens.TokenType,
		ExpiresInSeconds: tokens.ExpiresInSeconds,
		AccessToken:      tokens.AccessToken,
		RefreshToken:     tokens.RefreshToken,
		IDToken:          tokens.IDToken,
	}
}

func (s *UserService) fail(resp *common.GenericResponse, err error) {
	status, message := failureOf(err)
	s.metrics.ObserveBackendFailure(BackendIdentity, status)
	resp.Fail(status, message)
}
