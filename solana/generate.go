package solana

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/crypto"
	"github.com/AlexZinkM/devnet-session/internal/model"
	"github.com/AlexZinkM/devnet-session/internal/provider"

	"github.com/gagliardetto/solana-go"
	"github.com/skip2/go-qrcode"
)

// FileExistsError is an error when the keystore file already exists and is not empty
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("keystore %s is not empty", e.Path)
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// GenerateKeystore creates a provider keystore (.cwt) holding a fresh keypair.
// Returns the generated public address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateKeystore(filePath string, password []byte) (address string, err error) {
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Path: filePath}
	}

	wallet := solana.NewWallet()
	defer clear(wallet.PrivateKey)

	address = wallet.PublicKey().String()

	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	secret := &model.KeystoreSecret{
		PrivateKey: wallet.PrivateKey,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptKeystore(filePath, provider.NetworkMarker, address, qrCode, secret, password); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &FileExistsError{Path: filePath}
		}
		return "", fmt.Errorf("failed to encrypt keystore: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
