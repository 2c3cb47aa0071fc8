package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("local defaults", func(t *testing.T) {
		// Setup
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("STORE_PATH", "")
		t.Setenv("GEMINI_MODEL", "")

		// Act
		cfg, err := LoadFromEnv()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, DriverBolt, cfg.StoreDriver)
		assert.Equal(t, "./data/qtex.db", cfg.StorePath)
		assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
		assert.False(t, cfg.IsLambda())
	})

	t.Run("lambda requires a table", func(t *testing.T) {
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "qtex-api")
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("DYNAMODB_TABLE_NAME", "")

		_, err := LoadFromEnv()

		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "redis")

		_, err := LoadFromEnv()

		assert.Error(t, err)
	})

	t.Run("env file", func(t *testing.T) {
		// Setup
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=memory\nGEMINI_API_KEY=k\n"), 0o600))
		t.Setenv("STORE_DRIVER", "")
		t.Setenv("GEMINI_API_KEY", "")
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("GEMINI_API_KEY")

		// Act
		cfg, err := LoadFromEnv(path)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, DriverMemory, cfg.StoreDriver)
		assert.True(t, cfg.HasAdvisor())
	})
}
