package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDefaults(t *testing.T) {
	t.Setenv("PROVIDER_FILE_PATH", "")
	require.NoError(t, Init())

	assert.Equal(t, "8080", GetPort())
	assert.Equal(t, "https://api.devnet.solana.com", GetSolanaRPCURL())
	assert.Empty(t, GetProviderFilePath())
	assert.Equal(t, "info", Get().LogLevel)
	assert.Equal(t, 500, Get().ConfirmPollMs)
}

func TestInitRejectsBadRateLimit(t *testing.T) {
	t.Setenv("RPC_RATE_LIMIT", "0")
	assert.Error(t, Init())
}

func TestPasswordRoundTrip(t *testing.T) {
	SetPassword([]byte("dev"))

	out, err := GetProviderPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("dev"), out)

	// the caller owns the copy
	clear(out)
	again, err := GetProviderPasswordBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("dev"), again)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
