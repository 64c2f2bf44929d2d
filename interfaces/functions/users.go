package functions

import (
	"context"

	"github.com/ciprian88m/user-posts-lambda/application/services"
	"github.com/ciprian88m/user-posts-lambda/domain/core/entities"
	"github.com/ciprian88m/user-posts-lambda/pkg/common"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"go.uber.org/zap"
)

// UserFunctions exposes registration and login. Neither reads the caller
// id header.
type UserFunctions struct {
	service *services.UserService
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewUserFunctions creates the user handlers
func NewUserFunctions(service *services.UserService, metrics *observability.Collector, logger *zap.Logger) *UserFunctions {
	return &UserFunctions{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

// RegisterUser creates an account with a permanent password
func (f *UserFunctions) RegisterUser(ctx context.Context, raw string) (resp *common.GenericResponse, err error) {
	inv := begin(ctx, FuncRegisterUser, f.metrics, f.logger)
	defer func() { inv.end(resp, err) }()

	req, err := decode[entities.User](raw, false, true)
	if err != nil {
		return nil, err
	}

	inv.logger.Info("Registering user", zap.String("username", req.Body.Username))
	return finish(f.service.Register(ctx, *req.Body))
}

// LoginUser authenticates and returns the issued tokens
func (f *UserFunctions) LoginUser(ctx context.Context, raw string) (resp *common.AccessResponse, err error) {
	inv := begin(ctx, FuncLoginUser, f.metrics, f.logger)
	defer func() { inv.end(resp, err) }()

	req, err := decode[entities.User](raw, false, true)
	if err != nil {
		return nil, err
	}

	inv.logger.Info("Logging in user", zap.String("username", req.Body.Username))
	return finish(f.service.Login(ctx, *req.Body))
}
