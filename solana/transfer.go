package solana

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/devnet-session/internal/provider"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"go.uber.org/zap"
)

// RequestAirdrop funds the local account from the devnet faucet, waits for
// confirmation against the latest blockhash expiry, then refreshes the balance.
// Failures go back to the caller; the session returns to idle either way.
func (m *Manager) RequestAirdrop(ctx context.Context) (sig solana.Signature, err error) {
	m.mu.Lock()
	if m.account == nil {
		m.mu.Unlock()
		return solana.Signature{}, ErrNoAccount
	}
	if err := m.begin(StateAirdropPending); err != nil {
		m.mu.Unlock()
		return solana.Signature{}, err
	}
	owner := m.account.public
	m.mu.Unlock()

	defer func() {
		m.setState(StateIdle)
		m.record("airdrop", err)
	}()

	sig, err = m.chain.RequestAirdrop(ctx, owner, AirdropLamports)
	if err != nil {
		return solana.Signature{}, err
	}

	latest, err := m.chain.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	if err := m.chain.ConfirmTransaction(ctx, sig, latest.LastValidBlockHeight); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to confirm airdrop: %w", err)
	}
	m.logger.Info("airdrop confirmed", zap.Stringer("address", owner), zap.Stringer("signature", sig))

	if _, err := m.refreshBalance(ctx, owner); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

// Transfer sends TransferLamports from the local account to the connected
// wallet. Precondition failures are returned as errors and never reach the
// network; every attempt that starts ends in StateResultShown with a result,
// unless the wallet disconnected meanwhile.
func (m *Manager) Transfer(ctx context.Context) (TransferResult, error) {
	m.mu.Lock()
	if m.account == nil {
		m.mu.Unlock()
		return TransferResult{}, ErrNoAccount
	}
	if m.walletAddress.IsZero() || m.provider == nil {
		m.mu.Unlock()
		return TransferResult{}, ErrNotConnected
	}
	if err := m.begin(StateTransferPending); err != nil {
		m.mu.Unlock()
		return TransferResult{}, err
	}
	p := m.provider
	from := m.account.public
	secret := make(solana.PrivateKey, len(m.account.secret))
	copy(secret, m.account.secret)
	m.mu.Unlock()
	defer clear(secret)

	var result TransferResult
	sig, err := m.sendTransfer(ctx, p, from, secret)
	m.record("transfer", err)
	if err != nil {
		// the modal only ever says "insufficient balance"
		m.logger.Warn("transfer failed", zap.Stringer("from", from), zap.Error(err))
	} else {
		result = TransferResult{Success: true, Signature: sig.String()}
		m.logger.Info("transfer confirmed", zap.Stringer("from", from), zap.Stringer("signature", sig))
		if _, err := m.refreshBalance(ctx, from); err != nil {
			m.logger.Warn("balance refresh after transfer failed", zap.Error(err))
		}
	}

	m.mu.Lock()
	m.result = &result
	m.state = StateResultShown
	if m.walletAddress.IsZero() {
		// disconnected mid-flight: nowhere to show the result
		m.clearWallet()
	}
	m.mu.Unlock()
	return result, nil
}

func (m *Manager) sendTransfer(ctx context.Context, p provider.Provider, from solana.PublicKey, secret solana.PrivateKey) (solana.Signature, error) {
	// re-confirm the connection; its account is the destination
	to, err := p.Connect(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to confirm wallet connection: %w", err)
	}
	m.mu.Lock()
	m.walletAddress = to
	m.mu.Unlock()

	latest, err := m.chain.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, err
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(TransferLamports, from, to).Build(),
		},
		latest.Hash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if from.Equals(key) {
			return &secret
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return m.chain.SendAndConfirmTransaction(ctx, tx, latest.LastValidBlockHeight)
}

// DismissResult closes the result modal. It is a no-op unless a result is shown.
func (m *Manager) DismissResult() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateResultShown {
		m.state = StateIdle
		m.result = nil
	}
}
