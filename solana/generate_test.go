package solana

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/devnet-session/internal/crypto"
	"github.com/AlexZinkM/devnet-session/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phantom.cwt")
	password := []byte("devnet")

	address, err := GenerateKeystore(path, password)
	require.NoError(t, err)

	header, err := crypto.ReadKeystoreHeader(path)
	require.NoError(t, err)
	assert.Equal(t, provider.NetworkMarker, header.Network)
	assert.Equal(t, address, header.Address)
	assert.NotEmpty(t, header.QR)

	_, secret, err := crypto.DecryptKeystore(path, password)
	require.NoError(t, err)
	assert.Len(t, secret.PrivateKey, 64)

	_, err = GenerateKeystore(path, password)
	assert.True(t, IsFileExistsError(err))
}

func TestGenerateKeystoreEmptyFileIsReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phantom.cwt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := GenerateKeystore(path, []byte("devnet"))
	assert.NoError(t, err)
}
