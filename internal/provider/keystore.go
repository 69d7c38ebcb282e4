package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/devnet-session/internal/crypto"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// NetworkMarker is the keystore network value that identifies a usable provider
const NetworkMarker = "solana"

// Keystore is a Provider backed by an encrypted .cwt file.
// Connecting means unlocking the file with the operator's password.
type Keystore struct {
	path     string
	address  solana.PublicKey
	password PasswordFunc
	logger   *zap.Logger

	mu        sync.Mutex
	connected solana.PublicKey
	handlers  map[Event][]Handler
}

// Detect probes path for a keystore carrying the solana marker.
// A missing or foreign file is "not found", never an error.
func Detect(path string, password PasswordFunc, logger *zap.Logger) (*Keystore, bool) {
	if path == "" {
		logger.Debug("no provider keystore configured")
		return nil, false
	}

	header, err := crypto.ReadKeystoreHeader(path)
	if err != nil {
		logger.Info("provider keystore not available", zap.String("path", path), zap.Error(err))
		return nil, false
	}
	if header.Network != NetworkMarker {
		logger.Info("keystore is not a solana provider", zap.String("path", path), zap.String("network", header.Network))
		return nil, false
	}

	address, err := solana.PublicKeyFromBase58(header.Address)
	if err != nil {
		logger.Warn("keystore address is invalid", zap.String("path", path), zap.Error(err))
		return nil, false
	}

	return &Keystore{
		path:     path,
		address:  address,
		password: password,
		logger:   logger,
		handlers: make(map[Event][]Handler),
	}, true
}

// Address returns the account the keystore holds, connected or not
func (k *Keystore) Address() solana.PublicKey {
	return k.address
}

// Connect unlocks the keystore and returns its public key.
// A missing or wrong password is reported as ErrUserRejected.
func (k *Keystore) Connect(ctx context.Context) (solana.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return solana.PublicKey{}, err
	}

	key, err := k.unlock()
	if err != nil {
		return solana.PublicKey{}, err
	}
	defer clear(key)
	pub := key.PublicKey()

	k.mu.Lock()
	prev := k.connected
	k.connected = pub
	k.mu.Unlock()

	k.emit(EventConnect, pub)
	if !prev.IsZero() && !prev.Equals(pub) {
		k.emit(EventAccountChanged, pub)
	}
	return pub, nil
}

// Disconnect forgets the unlocked account
func (k *Keystore) Disconnect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k.mu.Lock()
	wasConnected := !k.connected.IsZero()
	k.connected = solana.PublicKey{}
	k.mu.Unlock()

	if wasConnected {
		k.emit(EventDisconnect, solana.PublicKey{})
	}
	return nil
}

// SignTransaction adds the keystore account's signature to tx
func (k *Keystore) SignTransaction(ctx context.Context, tx *solana.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k.mu.Lock()
	connected := k.connected
	k.mu.Unlock()
	if connected.IsZero() {
		return ErrNotConnected
	}

	key, err := k.unlock()
	if err != nil {
		return err
	}
	defer clear(key)

	_, err = tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if key.PublicKey().Equals(pub) {
			return &key
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	return nil
}

// On registers handler for event
func (k *Keystore) On(event Event, handler Handler) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.handlers[event] = append(k.handlers[event], handler)
}

func (k *Keystore) emit(event Event, account solana.PublicKey) {
	k.mu.Lock()
	handlers := append([]Handler(nil), k.handlers[event]...)
	k.mu.Unlock()

	for _, h := range handlers {
		h(account)
	}
}

// unlock decrypts the keystore; caller must clear the returned key
func (k *Keystore) unlock() (solana.PrivateKey, error) {
	password, err := k.password()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserRejected, err)
	}
	defer clear(password)

	_, secret, err := crypto.DecryptKeystore(k.path, password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %v", ErrUserRejected, err)
		}
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}

	// we store the full 64-byte key
	if len(secret.PrivateKey) != 64 {
		clear(secret.PrivateKey)
		return nil, errors.New("invalid private key length")
	}

	key := solana.PrivateKey(secret.PrivateKey)
	if !key.PublicKey().Equals(k.address) {
		clear(key)
		return nil, errors.New("private key does not match keystore address")
	}
	return key, nil
}
