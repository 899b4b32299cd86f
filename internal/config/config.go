package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pressroom/internal/models"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*models.Config, error) {
	// Start with default configuration
	config := models.NewDefaultConfig()

	// Load from file if provided and exists
	if configPath != "" {
		if err := loadFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Override with environment variables
	loadFromEnvironment(config)

	// Validate the final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(config *models.Config, filePath string) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", filePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return nil
}

// loadFromEnvironment loads configuration from environment variables
func loadFromEnvironment(config *models.Config) {
	// Server configuration
	if port := os.Getenv("PRESSROOM_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if host := os.Getenv("PRESSROOM_HOST"); host != "" {
		config.Server.Host = host
	}

	if timeout := os.Getenv("PRESSROOM_READ_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.ReadTimeout = d
		}
	}

	if timeout := os.Getenv("PRESSROOM_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.WriteTimeout = d
		}
	}

	if timeout := os.Getenv("PRESSROOM_IDLE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Server.IdleTimeout = d
		}
	}

	if tls := os.Getenv("PRESSROOM_TLS_ENABLED"); tls != "" {
		config.Server.TLSEnabled = strings.ToLower(tls) == "true"
	}

	if certFile := os.Getenv("PRESSROOM_TLS_CERT_FILE"); certFile != "" {
		config.Server.TLSCertFile = certFile
	}

	if keyFile := os.Getenv("PRESSROOM_TLS_KEY_FILE"); keyFile != "" {
		config.Server.TLSKeyFile = keyFile
	}

	// Store configuration
	if storeType := os.Getenv("PRESSROOM_STORE_TYPE"); storeType != "" {
		config.Store.Type = storeType
	}

	if storePath := os.Getenv("PRESSROOM_STORE_PATH"); storePath != "" {
		config.Store.Path = storePath
	}

	if dsn := os.Getenv("PRESSROOM_DATABASE_DSN"); dsn != "" {
		config.Store.Database.DSN = dsn
	}

	if maxOpen := os.Getenv("PRESSROOM_DATABASE_MAX_OPEN_CONNS"); maxOpen != "" {
		if conns, err := strconv.Atoi(maxOpen); err == nil {
			config.Store.Database.MaxOpenConns = conns
		}
	}

	if maxIdle := os.Getenv("PRESSROOM_DATABASE_MAX_IDLE_CONNS"); maxIdle != "" {
		if conns, err := strconv.Atoi(maxIdle); err == nil {
			config.Store.Database.MaxIdleConns = conns
		}
	}

	// Quota configuration
	if backend := os.Getenv("PRESSROOM_QUOTA_BACKEND"); backend != "" {
		config.Quota.Backend = backend
	}

	if addr := os.Getenv("PRESSROOM_REDIS_ADDR"); addr != "" {
		config.Quota.Redis.Addr = addr
	}

	if password := os.Getenv("PRESSROOM_REDIS_PASSWORD"); password != "" {
		config.Quota.Redis.Password = password
	}

	if db := os.Getenv("PRESSROOM_REDIS_DB"); db != "" {
		if dbNum, err := strconv.Atoi(db); err == nil {
			config.Quota.Redis.DB = dbNum
		}
	}

	if poolSize := os.Getenv("PRESSROOM_REDIS_POOL_SIZE"); poolSize != "" {
		if size, err := strconv.Atoi(poolSize); err == nil {
			config.Quota.Redis.PoolSize = size
		}
	}

	// Logging configuration
	if level := os.Getenv("PRESSROOM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if format := os.Getenv("PRESSROOM_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	if output := os.Getenv("PRESSROOM_LOG_OUTPUT"); output != "" {
		config.Logging.Output = output
	}

	if filePath := os.Getenv("PRESSROOM_LOG_FILE_PATH"); filePath != "" {
		config.Logging.FilePath = filePath
	}

	// Metrics configuration
	if metrics := os.Getenv("PRESSROOM_METRICS_ENABLED"); metrics != "" {
		config.Metrics.Enabled = strings.ToLower(metrics) == "true"
	}

	if path := os.Getenv("PRESSROOM_METRICS_PATH"); path != "" {
		config.Metrics.Path = path
	}

	if port := os.Getenv("PRESSROOM_METRICS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Metrics.Port = p
		}
	}

	// Tracing configuration
	if tracing := os.Getenv("PRESSROOM_TRACING_ENABLED"); tracing != "" {
		config.Observability.Tracing.Enabled = strings.ToLower(tracing) == "true"
	}

	if endpoint := os.Getenv("PRESSROOM_OTLP_ENDPOINT"); endpoint != "" {
		config.Observability.Tracing.OTLPEndpoint = endpoint
	}
}

// SaveExample saves an example configuration file
func SaveExample(filePath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Get default config with some example values
	config := models.NewDefaultConfig()

	// Example durable store and shared quota backend
	config.Store.Type = models.StoreTypeSQLite
	config.Store.Path = "./data/pressroom.db"
	config.Quota.Backend = models.QuotaBackendRedis
	config.Quota.Redis.Addr = "localhost:6379"

	// Example TLS configuration
	config.Server.TLSEnabled = false
	config.Server.TLSCertFile = "/path/to/cert.pem"
	config.Server.TLSKeyFile = "/path/to/key.pem"

	// Marshal to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write to file
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
