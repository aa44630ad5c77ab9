package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolwatch/poolwatch/discovery/config"
)

func TestNew(t *testing.T) {
	t.Run("it requires an RPC endpoint", func(t *testing.T) {
		// Arrange
		t.Setenv("RPC_URL", "")

		// Act
		_, err := config.New()

		// Assert
		assert.ErrorContains(t, err, "RPC_URL")
	})

	t.Run("it applies defaults", func(t *testing.T) {
		// Arrange
		t.Setenv("RPC_URL", "https://rpc.example.com")

		// Act
		cfg, err := config.New()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "data.json", cfg.OutputFile)
		assert.Equal(t, "DpooSqZRL3qCmiq82YyB4zWmLfH3iEqx2gy8f2B6zjru", cfg.Chain.StakePool.String())
	})
}
