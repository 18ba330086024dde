package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageJSONFile = "jsonfile"
	StorageDynamoDB = "dynamodb"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// Storage
	StorageBackend string `yaml:"storage_backend"`
	DataDir        string `yaml:"data_dir"`

	// AWS configuration
	AWSRegion     string `yaml:"aws_region"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	EventBusName  string `yaml:"event_bus_name"`

	// Remote extraction
	OpenAIAPIKey      string        `yaml:"openai_api_key"`
	OpenAIModel       string        `yaml:"openai_model"`
	OpenAIBaseURL     string        `yaml:"openai_base_url"`
	ExtractionTimeout time.Duration `yaml:"extraction_timeout"`

	// Rule overrides, watched for changes
	ExtractionRulesFile string `yaml:"extraction_rules_file"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Observability
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableTracing bool   `yaml:"enable_tracing"`
	OTLPEndpoint  string `yaml:"otlp_endpoint"`

	// CORS
	EnableCORS         bool     `yaml:"enable_cors"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		ServerAddress:     ":8000",
		Environment:       "development",
		StorageBackend:    StorageJSONFile,
		DataDir:           "./data",
		AWSRegion:         "us-west-2",
		DynamoDBTable:     "stratagist",
		OpenAIModel:       "gpt-3.5-turbo",
		ExtractionTimeout: 10 * time.Second,
		LogLevel:          "info",
		EnableMetrics:     true,
		EnableCORS:        true,
		CORSAllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by CONFIG_FILE (if any), then environment variables
func LoadConfig() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	cfg.overlayEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) overlayEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", c.StorageBackend))
	c.DataDir = getEnv("DATA_DIR", c.DataDir)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)

	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.ExtractionTimeout = getEnvDuration("EXTRACTION_TIMEOUT", c.ExtractionTimeout)
	c.ExtractionRulesFile = getEnv("EXTRACTION_RULES_FILE", c.ExtractionRulesFile)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.OTLPEndpoint = getEnv("OTLP_ENDPOINT", c.OTLPEndpoint)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.CORSAllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageJSONFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the %s backend", StorageJSONFile)
		}
	case StorageDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required for the %s backend", StorageDynamoDB)
		}
		if c.AWSRegion == "" {
			return fmt.Errorf("AWS_REGION is required for the %s backend", StorageDynamoDB)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.ExtractionTimeout <= 0 {
		return fmt.Errorf("EXTRACTION_TIMEOUT must be positive")
	}
	if c.EnableTracing && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP_ENDPOINT is required when tracing is enabled")
	}
	return nil
}

// ExternalExtractionEnabled reports whether a remote extraction credential is set
func (c *Config) ExternalExtractionEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value == "yes"
}

// getEnvDuration accepts Go durations ("750ms") or whole seconds ("10")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
