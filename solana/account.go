package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/common"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// CreateAccount generates the local keypair. The session stays in
// StateAccountCreating for a fixed delay before returning to idle.
func (m *Manager) CreateAccount() (solana.PublicKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.account != nil {
		return solana.PublicKey{}, ErrAccountExists
	}
	if err := m.begin(StateAccountCreating); err != nil {
		return solana.PublicKey{}, err
	}

	secret, err := solana.NewRandomPrivateKey()
	if err != nil {
		m.state = StateIdle
		m.record("create_account", err)
		return solana.PublicKey{}, fmt.Errorf("failed to generate keypair: %w", err)
	}

	m.account = &localAccount{public: secret.PublicKey(), secret: secret}
	m.balance = 0
	m.balanceKnown = false

	time.AfterFunc(m.createDelay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.state == StateAccountCreating {
			m.state = StateIdle
		}
	})

	m.record("create_account", nil)
	m.logger.Info("local account created", zap.Stringer("address", m.account.public))
	return m.account.public, nil
}

// RefreshBalance reads the local account balance from the cluster.
// Errors are returned as is; there is no retry.
func (m *Manager) RefreshBalance(ctx context.Context) (uint64, error) {
	m.mu.Lock()
	if m.account == nil {
		m.mu.Unlock()
		return 0, ErrNoAccount
	}
	owner := m.account.public
	m.mu.Unlock()

	return m.refreshBalance(ctx, owner)
}

func (m *Manager) refreshBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	lamports, err := m.chain.GetBalance(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh balance: %w", err)
	}

	m.mu.Lock()
	if m.account != nil && m.account.public.Equals(owner) {
		m.balance = lamports
		m.balanceKnown = true
	}
	m.mu.Unlock()

	m.logger.Debug("balance refreshed", zap.Stringer("address", owner), zap.String("sol", common.FormatSOL(lamports)))
	return lamports, nil
}
