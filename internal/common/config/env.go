package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverDynamoDB = "dynamodb"
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// DefaultGeminiModel is used when GEMINI_MODEL is not set
const DefaultGeminiModel = "gemini-3-flash-preview"

// Config represents the application configuration
type Config struct {
	// AWS-specific configuration
	AWSRegion         string
	DynamoDBTableName string
	UserPoolID        string
	CognitoClientID   string

	Environment string

	// Storage
	StoreDriver string
	StorePath   string

	// Generative model
	GeminiModel        string
	GeminiAPIKey       string
	GeminiAPIKeySecret string

	EvidenceBucket     string
	AccountAliasesFile string

	isLambda bool
}

// LoadFromEnv loads the configuration from environment variables. A .env file
// in the working directory is read first when present; variables already set
// in the environment win.
func LoadFromEnv(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Environment:        getEnvOrDefault("ENVIRONMENT", "dev"),
		AWSRegion:          getEnvOrDefault("AWS_REGION", "ap-northeast-2"),
		DynamoDBTableName:  os.Getenv("DYNAMODB_TABLE_NAME"),
		UserPoolID:         os.Getenv("USER_POOL_ID"),
		CognitoClientID:    os.Getenv("COGNITO_CLIENT_ID"),
		StorePath:          os.Getenv("STORE_PATH"),
		GeminiModel:        getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiAPIKeySecret: os.Getenv("GEMINI_API_KEY_SECRET"),
		EvidenceBucket:     os.Getenv("EVIDENCE_BUCKET"),
		AccountAliasesFile: os.Getenv("ACCOUNT_ALIASES_FILE"),
		isLambda:           os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
	}

	// Lambda functions default to DynamoDB, local runs to a bolt file
	defaultDriver := DriverBolt
	if cfg.isLambda {
		defaultDriver = DriverDynamoDB
	}
	cfg.StoreDriver = getEnvOrDefault("STORE_DRIVER", defaultDriver)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverDynamoDB:
		if c.DynamoDBTableName == "" {
			return errors.New("DYNAMODB_TABLE_NAME environment variable is required for the dynamodb store")
		}
	case DriverBolt:
		if c.StorePath == "" {
			c.StorePath = "./data/qtex.db"
		}
	case DriverSQLite:
		if c.StorePath == "" {
			c.StorePath = "./data/qtex.sqlite"
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// IsProd reports whether the service runs in production.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// IsDev reports whether verbose request logging and header tenants are allowed.
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// IsLambda returns true if the application is running in AWS Lambda
func (c *Config) IsLambda() bool {
	return c.isLambda
}

// HasAdvisor reports whether a Gemini key can be obtained.
func (c *Config) HasAdvisor() bool {
	return c.GeminiAPIKey != "" || c.GeminiAPIKeySecret != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
