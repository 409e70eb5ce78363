package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config contains the complete configuration for the orchestrator service.
type Config struct {
	// Server contains the HTTP listener settings.
	Server ServerConfig `json:"server"`

	// Storage selects and configures the item store backend.
	Storage StorageConfig `json:"storage"`

	// LLM configures the assistant's language model. An empty APIKey is
	// valid: the assistant then answers from its canned fallbacks only.
	LLM LLMConfig `json:"llm"`

	// Memory configures agent memory persistence.
	Memory MemoryConfig `json:"memory"`
}

// ServerConfig contains the HTTP listener settings.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string `json:"addr"`
}

// StorageConfig selects the item store backend.
//
// Supported providers: fixture, sqlite, postgres, mysql.
type StorageConfig struct {
	// Provider is the backend name.
	Provider string `json:"provider"`

	// SQLitePath is the database file path (sqlite provider).
	SQLitePath string `json:"sqlite_path,omitempty"`

	// Host, Port, User, Password, DBName apply to the postgres and mysql
	// providers.
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	DBName   string `json:"db_name,omitempty"`

	// SSLMode applies to the postgres provider.
	SSLMode string `json:"ssl_mode,omitempty"`
}

// LLMConfig contains the language model settings.
type LLMConfig struct {
	// Provider is the LLM provider name; only "openai" is wired.
	Provider string `json:"provider"`

	// APIKey is the provider API key. Empty disables the LLM.
	APIKey string `json:"api_key"`

	// Model is the model name (defaults to gpt-4).
	Model string `json:"model"`

	// BaseURL overrides the provider endpoint (optional).
	BaseURL string `json:"base_url,omitempty"`
}

// MemoryConfig contains agent memory persistence settings.
type MemoryConfig struct {
	// Path is the JSON file agent memory is persisted to. Empty disables
	// persistence.
	Path string `json:"path,omitempty"`
}

// supportedProviders are the storage backends Validate accepts.
var supportedProviders = map[string]bool{
	"fixture":  true,
	"sqlite":   true,
	"postgres": true,
	"mysql":    true,
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAgentError("Validate", fmt.Errorf("%w: server addr is required", ErrInvalidConfig))
	}
	if !supportedProviders[c.Storage.Provider] {
		return NewAgentError("Validate",
			fmt.Errorf("%w: unsupported storage provider %q", ErrInvalidConfig, c.Storage.Provider))
	}
	if c.LLM.APIKey != "" && c.LLM.Provider != "openai" {
		return NewAgentError("Validate",
			fmt.Errorf("%w: unsupported llm provider %q", ErrInvalidConfig, c.LLM.Provider))
	}
	return nil
}

// FindEnvFile searches for a .env file in the current directory and up to
// five parent directories. Returns the path and whether one was found.
func FindEnvFile() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for i := 0; i < 6; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// LoadConfigFromEnv loads configuration from environment variables,
// reading a .env file first when one can be found.
//
// Supported variables:
//   - SERVER_ADDR (default ":3000")
//   - DATABASE_PROVIDER (fixture, sqlite, postgres, mysql; default fixture)
//   - SQLITE_PATH
//   - POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD,
//     POSTGRES_DATABASE, POSTGRES_SSLMODE
//   - MYSQL_HOST, MYSQL_PORT, MYSQL_USER, MYSQL_PASSWORD, MYSQL_DATABASE
//   - LLM_PROVIDER, OPENAI_API_KEY (or LLM_API_KEY), LLM_MODEL, LLM_BASE_URL
//   - MEMORY_PATH (default "data/memory.json")
func LoadConfigFromEnv() (*Config, error) {
	if envPath, found := FindEnvFile(); found {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	provider := getEnvOrDefault("DATABASE_PROVIDER", "fixture")
	storageCfg := StorageConfig{Provider: provider}

	switch provider {
	case "sqlite":
		storageCfg.SQLitePath = getEnvOrDefault("SQLITE_PATH", "./orchestrator.db")
	case "postgres":
		port, _ := strconv.Atoi(getEnvOrDefault("POSTGRES_PORT", "5432"))
		storageCfg.Host = getEnvOrDefault("POSTGRES_HOST", "localhost")
		storageCfg.Port = port
		storageCfg.User = getEnvOrDefault("POSTGRES_USER", "postgres")
		storageCfg.Password = os.Getenv("POSTGRES_PASSWORD")
		storageCfg.DBName = getEnvOrDefault("POSTGRES_DATABASE", "michal_ai")
		storageCfg.SSLMode = getEnvOrDefault("POSTGRES_SSLMODE", "disable")
	case "mysql":
		port, _ := strconv.Atoi(getEnvOrDefault("MYSQL_PORT", "3306"))
		storageCfg.Host = getEnvOrDefault("MYSQL_HOST", "127.0.0.1")
		storageCfg.Port = port
		storageCfg.User = getEnvOrDefault("MYSQL_USER", "root")
		storageCfg.Password = os.Getenv("MYSQL_PASSWORD")
		storageCfg.DBName = getEnvOrDefault("MYSQL_DATABASE", "michal_ai")
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}

	config := &Config{
		Server: ServerConfig{
			Addr: getEnvOrDefault("SERVER_ADDR", ":3000"),
		},
		Storage: storageCfg,
		LLM: LLMConfig{
			Provider: getEnvOrDefault("LLM_PROVIDER", "openai"),
			APIKey:   apiKey,
			Model:    getEnvOrDefault("LLM_MODEL", "gpt-4"),
			BaseURL:  os.Getenv("LLM_BASE_URL"),
		},
		Memory: MemoryConfig{
			Path: getEnvOrDefault("MEMORY_PATH", "data/memory.json"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
