package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader layers configuration sources, lowest priority first:
//  1. defaults in code
//  2. the YAML file at path, when set
//  3. environment variables
type Loader struct {
	path    string
	sources []string
}

// NewLoader creates a loader reading the YAML file at path. An empty path
// skips the file layer.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load builds and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()
	l.sources = append(l.sources, "defaults")

	if l.path != "" {
		file, err := os.Open(l.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		if err := decodeYAML(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", l.path, err)
		}
		l.sources = append(l.sources, l.path)
	}

	applyEnvironment(cfg)
	l.sources = append(l.sources, "environment")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Sources lists where configuration was loaded from, in order.
func (l *Loader) Sources() []string {
	return l.sources
}

func decodeYAML(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// applyEnvironment overlays environment variables on cfg.
func applyEnvironment(cfg *Config) {
	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.AWSRegion = getEnv("AWS_REGION", cfg.AWSRegion)

	cfg.Cognito.Region = getEnv("COGNITO_REGION", cfg.Cognito.Region)
	cfg.Cognito.UserPoolID = getEnv("COGNITO_USER_POOL_ID", cfg.Cognito.UserPoolID)
	cfg.Cognito.ClientID = getEnv("COGNITO_CLIENT_ID", cfg.Cognito.ClientID)

	cfg.DynamoDB.Region = getEnv("DYNAMODB_REGION", cfg.DynamoDB.Region)
	cfg.DynamoDB.TableName = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", cfg.DynamoDB.TableName))
	cfg.EventBusName = getEnv("EVENT_BUS_NAME", cfg.EventBusName)

	cfg.IsLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	cfg.FunctionName = getEnv("FUNCTION_NAME", cfg.FunctionName)

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)

	cfg.EnableMetrics = getEnvBool("ENABLE_METRICS", cfg.EnableMetrics)
	cfg.EnableTracing = getEnvBool("ENABLE_TRACING", cfg.EnableTracing)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)
	cfg.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", cfg.AllowedOrigins)
}
