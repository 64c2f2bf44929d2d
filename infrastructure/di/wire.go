//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/ciprian88m/user-posts-lambda/application/services"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/config"
	"github.com/ciprian88m/user-posts-lambda/interfaces/functions"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideMetrics,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCognitoClient,
	ProvideEventBridgeClient,
	ProvidePostRepository,
	ProvideIdentityProvider,
	ProvideEventPublisher,
	ProvideJWTValidator,
	services.NewPostsService,
	services.NewUserService,
	functions.NewPostsFunctions,
	functions.NewUserFunctions,
	functions.NewRegistry,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
