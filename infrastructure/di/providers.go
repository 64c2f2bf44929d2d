package di

import (
	"context"
	"fmt"

	"github.com/ciprian88m/user-posts-lambda/application/ports"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/config"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/identity/cognito"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/messaging/eventbridge"
	"github.com/ciprian88m/user-posts-lambda/infrastructure/persistence/dynamodb"
	"github.com/ciprian88m/user-posts-lambda/interfaces/functions"
	"github.com/ciprian88m/user-posts-lambda/interfaces/http/rest"
	"github.com/ciprian88m/user-posts-lambda/pkg/auth"
	"github.com/ciprian88m/user-posts-lambda/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName names this service in traces and metrics
const ServiceName = "user-posts-lambda"

// ProvideLogger creates the application logger
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() || cfg.IsLambda {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build(zap.Fields(zap.String("service", ServiceName)))
}

// ProvideTracer creates the X-Ray tracer. Segments are only recorded
// inside Lambda, where a parent segment exists.
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(ServiceName, cfg.EnableTracing && cfg.IsLambda)
}

// ProvideMetrics creates the metrics collector, or nil when disabled
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("user_posts")
}

// ProvideAWSConfig loads the shared AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates the posts table client in its own region
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		o.Region = cfg.DynamoDBRegion()
	})
}

// ProvideCognitoClient creates the user pool client in its own region
func ProvideCognitoClient(awsCfg aws.Config, cfg *config.Config) *cip.Client {
	return cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		o.Region = cfg.CognitoRegion()
	})
}

// ProvideEventBridgeClient creates the EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvidePostRepository creates the DynamoDB posts repository
func ProvidePostRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.PostRepository {
	return dynamodb.NewPostRepository(client, cfg.DynamoDB.TableName, tracer, logger)
}

// ProvideIdentityProvider creates the Cognito identity provider
func ProvideIdentityProvider(
	client *cip.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.IdentityProvider {
	return cognito.NewIdentityProvider(client, cfg.Cognito.UserPoolID, cfg.Cognito.ClientID, tracer, logger)
}

// ProvideEventPublisher publishes to EventBridge when a bus is configured
// and discards events otherwise.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return ports.NoopEventPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideJWTValidator creates the bearer validator for the local server.
// Inside Lambda the API Gateway authorizer validates tokens, so nil is
// returned there and when no secret is configured.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.IsLambda || cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)
}

// ProvideRouter creates the HTTP router over the function registry
func ProvideRouter(
	registry *functions.Registry,
	cfg *config.Config,
	validator *auth.JWTValidator,
	metrics *observability.Collector,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(registry, rest.Options{
		EnableCORS:     cfg.EnableCORS,
		AllowedOrigins: cfg.AllowedOrigins,
		Validator:      validator,
		Metrics:        metrics,
	}, logger)
}
