package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AlexZinkM/devnet-session/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the keystore.
	// N=2^18 (~256MB RAM, 0.5-2s); N=2^20 does not fit mobile per-app memory limits.
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12

	// KeystoreExt is the only accepted keystore extension
	KeystoreExt = ".cwt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrKeystoreExists is returned when the target keystore file already has content
var ErrKeystoreExists = fmt.Errorf("keystore is not empty: %w", os.ErrExist)

// EncryptKeystore encrypts secret and writes it to a .cwt file
// password must be []byte for security (caller should zero it after use)
func EncryptKeystore(filePath string, network, address, qrCode string, secret *model.KeystoreSecret, password []byte) error {
	if filepath.Ext(filePath) != KeystoreExt {
		return errors.New("file must have .cwt extension")
	}

	// An existing empty file may be reused, anything else is refused
	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return ErrKeystoreExists
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(secret)
	if err != nil {
		return fmt.Errorf("failed to marshal keystore secret: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	keystore := model.KeystoreFile{
		Network:    network,
		Address:    address,
		QR:         qrCode,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(keystore, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keystore: %w", err)
	}

	// UTF-8 BOM for proper display in Windows
	if err := os.WriteFile(filePath, append(utf8BOM, fileData...), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// newGCM derives the AES key from password and salt
func newGCM(password, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
