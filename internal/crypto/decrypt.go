package crypto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/devnet-session/internal/model"
)

// ErrInvalidPassword is returned when the keystore cannot be opened with the given password
var ErrInvalidPassword = errors.New("invalid password")

// DecryptKeystore reads and decrypts a .cwt file
// password must be []byte for security (caller should zero it after use)
func DecryptKeystore(filePath string, password []byte) (*model.KeystoreFile, *model.KeystoreSecret, error) {
	keystore, err := ReadKeystoreHeader(filePath)
	if err != nil {
		return nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(keystore.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(keystore.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(keystore.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, nil, fmt.Errorf("invalid nonce length: %d", len(nonce))
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var secret model.KeystoreSecret
	if err := json.Unmarshal(plaintext, &secret); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal keystore secret: %w", err)
	}

	return keystore, &secret, nil
}

// ReadKeystoreHeader reads the public part of a .cwt file (without decryption)
func ReadKeystoreHeader(filePath string) (*model.KeystoreFile, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %w", err)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, errors.New("file is empty")
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	fileData = bytes.TrimPrefix(fileData, utf8BOM)

	var keystore model.KeystoreFile
	if err := json.Unmarshal(fileData, &keystore); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keystore: %w", err)
	}

	return &keystore, nil
}
