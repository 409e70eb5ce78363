package core_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michal-ai/orchestrator-go/pkg/core"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  core.Config
		wantErr bool
	}{
		{
			name: "fixture provider",
			config: core.Config{
				Server:  core.ServerConfig{Addr: ":3000"},
				Storage: core.StorageConfig{Provider: "fixture"},
			},
		},
		{
			name: "sqlite provider",
			config: core.Config{
				Server:  core.ServerConfig{Addr: ":3000"},
				Storage: core.StorageConfig{Provider: "sqlite", SQLitePath: "./test.db"},
			},
		},
		{
			name: "missing addr",
			config: core.Config{
				Storage: core.StorageConfig{Provider: "fixture"},
			},
			wantErr: true,
		},
		{
			name: "unknown storage provider",
			config: core.Config{
				Server:  core.ServerConfig{Addr: ":3000"},
				Storage: core.StorageConfig{Provider: "mongodb"},
			},
			wantErr: true,
		},
		{
			name: "unknown llm provider with key",
			config: core.Config{
				Server:  core.ServerConfig{Addr: ":3000"},
				Storage: core.StorageConfig{Provider: "fixture"},
				LLM:     core.LLMConfig{Provider: "gemini", APIKey: "k"},
			},
			wantErr: true,
		},
		{
			name: "no llm key skips llm validation",
			config: core.Config{
				Server:  core.ServerConfig{Addr: ":3000"},
				Storage: core.StorageConfig{Provider: "fixture"},
				LLM:     core.LLMConfig{Provider: "gemini"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, core.ErrInvalidConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_ADDR", "DATABASE_PROVIDER", "OPENAI_API_KEY", "LLM_API_KEY", "LLM_MODEL", "MEMORY_PATH"} {
		_ = os.Unsetenv(key)
	}

	config, err := core.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":3000", config.Server.Addr)
	assert.Equal(t, "fixture", config.Storage.Provider)
	assert.Equal(t, "gpt-4", config.LLM.Model)
	assert.Equal(t, "data/memory.json", config.Memory.Path)
}

func TestLoadConfigFromEnvPostgres(t *testing.T) {
	env := map[string]string{
		"DATABASE_PROVIDER": "postgres",
		"POSTGRES_HOST":     "db.internal",
		"POSTGRES_PORT":     "5433",
		"POSTGRES_USER":     "michal",
		"POSTGRES_DATABASE": "orchestrator",
	}
	for k, v := range env {
		_ = os.Setenv(k, v)
	}
	defer func() {
		for k := range env {
			_ = os.Unsetenv(k)
		}
	}()

	config, err := core.LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres", config.Storage.Provider)
	assert.Equal(t, "db.internal", config.Storage.Host)
	assert.Equal(t, 5433, config.Storage.Port)
	assert.Equal(t, "orchestrator", config.Storage.DBName)
	assert.Equal(t, "disable", config.Storage.SSLMode)
}

func TestAgentErrorWrapping(t *testing.T) {
	err := core.NewAgentError("LoadSnapshot", core.ErrStorageOperation)
	assert.EqualError(t, err, "orchestrator: LoadSnapshot: storage operation failed")
	assert.True(t, errors.Is(err, core.ErrStorageOperation))

	assert.Nil(t, core.NewAgentError("Op", nil))
}
