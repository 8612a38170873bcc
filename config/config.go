// Package config loads the process configuration from the environment and
// builds the logger and AWS clients derived from it.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Run modes.
const (
	// ModeLambda serves invocations through the AWS Lambda runtime API.
	ModeLambda = "lambda"
	// ModeHTTP runs a long-lived HTTP server.
	ModeHTTP = "http"
)

// Store backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

const defaultRegion = "us-west-2"

// Config holds all application configuration
type Config struct {
	// RunMode selects lambda or http. Empty means detect: lambda when the
	// Lambda runtime API is present, http otherwise.
	RunMode          string `env:"RUN_MODE"`
	LambdaRuntimeAPI string `env:"AWS_LAMBDA_RUNTIME_API"`

	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Server configuration
	ServerAddress      string   `env:"SERVER_ADDRESS" envDefault:":8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// APIBasePath is stripped from request paths before routing, e.g. an
	// API Gateway stage name.
	APIBasePath string `env:"API_BASE_PATH"`

	// AWS configuration
	CustomRegion     string `env:"CUSTOM_AWS_REGION"`
	AWSRegion        string `env:"AWS_REGION"`
	TableName        string `env:"DYNAMODB_TABLE_NAME" envDefault:"venues"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	StoreBackend     string `env:"STORE_BACKEND" envDefault:"dynamodb"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the configuration from vars instead of the process
// environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.RunMode = strings.ToLower(cfg.RunMode)
	cfg.StoreBackend = strings.ToLower(cfg.StoreBackend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.RunMode {
	case "", ModeLambda, ModeHTTP:
	default:
		return fmt.Errorf("unknown RUN_MODE %q", c.RunMode)
	}
	switch c.StoreBackend {
	case BackendDynamoDB, BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StoreBackend == BackendDynamoDB && c.TableName == "" {
		return fmt.Errorf("DYNAMODB_TABLE_NAME is required")
	}
	return nil
}

// Mode returns the effective run mode.
func (c *Config) Mode() string {
	if c.RunMode != "" {
		return c.RunMode
	}
	if c.LambdaRuntimeAPI != "" {
		return ModeLambda
	}
	return ModeHTTP
}

// Region returns CUSTOM_AWS_REGION, falling back to AWS_REGION and then
// to us-west-2.
func (c *Config) Region() string {
	if c.CustomRegion != "" {
		return c.CustomRegion
	}
	if c.AWSRegion != "" {
		return c.AWSRegion
	}
	return defaultRegion
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
