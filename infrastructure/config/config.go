package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultRegion is used when neither the backend-specific nor the global
// region is configured.
const DefaultRegion = "eu-central-1"

// CognitoConfig holds the identity provider settings
type CognitoConfig struct {
	Region     string `yaml:"region"`
	UserPoolID string `yaml:"userPoolId"`
	ClientID   string `yaml:"clientId"`
}

// DynamoDBConfig holds the posts table settings
type DynamoDBConfig struct {
	Region    string `yaml:"region"`
	TableName string `yaml:"tableName"`
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"serverAddress"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion    string         `yaml:"awsRegion"`
	Cognito      CognitoConfig  `yaml:"cognito"`
	DynamoDB     DynamoDBConfig `yaml:"dynamodb"`
	EventBusName string         `yaml:"eventBusName"`

	// Lambda configuration
	IsLambda     bool   `yaml:"-"`
	FunctionName string `yaml:"functionName"`

	// Logging
	LogLevel string `yaml:"logLevel"`

	// Local bearer validation
	JWTSecret string `yaml:"jwtSecret"`
	JWTIssuer string `yaml:"jwtIssuer"`

	// Feature flags
	EnableMetrics  bool     `yaml:"enableMetrics"`
	EnableTracing  bool     `yaml:"enableTracing"`
	EnableCORS     bool     `yaml:"enableCors"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Default returns the configuration used before any file or environment
// overrides are applied.
func Default() *Config {
	return &Config{
		ServerAddress:  ":8080",
		Environment:    "development",
		AWSRegion:      DefaultRegion,
		DynamoDB:       DynamoDBConfig{TableName: "posts"},
		LogLevel:       "info",
		JWTIssuer:      "user-posts-lambda",
		EnableCORS:     true,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
}

// LoadConfig loads configuration from the optional CONFIG_FILE and the
// environment, then validates it.
func LoadConfig() (*Config, error) {
	return NewLoader(os.Getenv("CONFIG_FILE")).Load()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.Cognito.UserPoolID == "" {
			return fmt.Errorf("COGNITO_USER_POOL_ID is required in production")
		}
		if c.Cognito.ClientID == "" {
			return fmt.Errorf("COGNITO_CLIENT_ID is required in production")
		}
		if c.DynamoDB.TableName == "" {
			return fmt.Errorf("TABLE_NAME is required in production")
		}
	}

	return nil
}

// CognitoRegion returns the region for the identity provider client
func (c *Config) CognitoRegion() string {
	return firstNonEmpty(c.Cognito.Region, c.AWSRegion, DefaultRegion)
}

// DynamoDBRegion returns the region for the posts table client
func (c *Config) DynamoDBRegion() string {
	return firstNonEmpty(c.DynamoDB.Region, c.AWSRegion, DefaultRegion)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvList gets a comma-separated environment variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
