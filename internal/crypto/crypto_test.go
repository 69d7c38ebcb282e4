package crypto

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexZinkM/devnet-session/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provider.cwt")
	secret := &model.KeystoreSecret{PrivateKey: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"), CreatedAt: "2026-10-19T00:00:00Z"}

	require.NoError(t, EncryptKeystore(path, "solana", "addr", "qr", secret, []byte("dev")))

	header, err := ReadKeystoreHeader(path)
	require.NoError(t, err)
	assert.Equal(t, "solana", header.Network)
	assert.Equal(t, "addr", header.Address)

	_, got, err := DecryptKeystore(path, []byte("dev"))
	require.NoError(t, err)
	assert.Equal(t, secret.PrivateKey, got.PrivateKey)

	_, _, err = DecryptKeystore(path, []byte("wrong"))
	assert.True(t, errors.Is(err, ErrInvalidPassword))

	// second write into a non-empty file is refused
	err = EncryptKeystore(path, "solana", "addr", "qr", secret, []byte("dev"))
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestEncryptKeystoreRejectsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provider.json")
	err := EncryptKeystore(path, "solana", "addr", "", &model.KeystoreSecret{}, []byte("dev"))
	assert.Error(t, err)
}

func TestReadKeystoreHeaderMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadKeystoreHeader(filepath.Join(dir, "nope.cwt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.cwt")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = ReadKeystoreHeader(empty)
	assert.Error(t, err)
}
