package solana

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/client"
	"github.com/AlexZinkM/devnet-session/internal/metrics"
	"github.com/AlexZinkM/devnet-session/internal/provider"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

const (
	// AirdropLamports is what one faucet request asks for (2 SOL)
	AirdropLamports = 2 * solana.LAMPORTS_PER_SOL
	// TransferLamports is the fixed transfer to the connected wallet (2 SOL)
	TransferLamports = 2 * solana.LAMPORTS_PER_SOL
	// LowBalanceLamports: at or below this the transfer warning is shown
	LowBalanceLamports = 2 * solana.LAMPORTS_PER_SOL

	// accountCreateDelay only drives the "Creating Account..." label
	accountCreateDelay = time.Second
)

var (
	ErrProviderNotFound = errors.New("no wallet provider found")
	ErrUserRejected     = provider.ErrUserRejected
	ErrNoAccount        = errors.New("no local account: create one first")
	ErrNotConnected     = errors.New("wallet is not connected")
	ErrAccountExists    = errors.New("local account already exists")
	ErrBusy             = errors.New("another action is in progress")
)

// State is the session lifecycle state
type State int

const (
	StateIdle State = iota
	StateAccountCreating
	StateAirdropPending
	StateTransferPending
	StateResultShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccountCreating:
		return "account_creating"
	case StateAirdropPending:
		return "airdrop_pending"
	case StateTransferPending:
		return "transfer_pending"
	case StateResultShown:
		return "result_shown"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Chain is the slice of the Solana RPC the session uses
type Chain interface {
	GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	RequestAirdrop(ctx context.Context, owner solana.PublicKey, lamports uint64) (solana.Signature, error)
	GetLatestBlockhash(ctx context.Context) (client.Blockhash, error)
	ConfirmTransaction(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) error
	SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction, lastValidBlockHeight uint64) (solana.Signature, error)
	GetTransactions(ctx context.Context, owner solana.PublicKey) ([]client.SolanaTransaction, error)
}

// DetectFunc probes the environment for a wallet provider
type DetectFunc func() (provider.Provider, bool)

// TransferResult is what the result modal shows
type TransferResult struct {
	Success   bool
	Signature string
}

type localAccount struct {
	public solana.PublicKey
	secret solana.PrivateKey
}

// Manager owns the session: provider handle, connected wallet, local account,
// balance and the transfer state machine. Safe for concurrent use; actions that
// would overlap a pending one fail with ErrBusy.
type Manager struct {
	chain       Chain
	detect      DetectFunc
	logger      *zap.Logger
	createDelay time.Duration

	mu            sync.Mutex
	state         State
	provider      provider.Provider
	subscribed    provider.Provider
	walletAddress solana.PublicKey
	account       *localAccount
	balance       uint64
	balanceKnown  bool
	result        *TransferResult
}

// Option configures a Manager
type Option func(*Manager)

// WithCreateDelay overrides how long the session stays in StateAccountCreating
func WithCreateDelay(d time.Duration) Option {
	return func(m *Manager) {
		m.createDelay = d
	}
}

// NewManager creates a session and probes for a provider, as the page does on mount
func NewManager(chain Chain, detect DetectFunc, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		chain:       chain,
		detect:      detect,
		logger:      logger,
		createDelay: accountCreateDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.DetectProvider()
	return m
}

// Snapshot is a consistent copy of the session for rendering
type Snapshot struct {
	State           State
	ProviderPresent bool
	WalletAddress   string
	AccountAddress  string
	Balance         uint64
	BalanceKnown    bool
	Result          *TransferResult
}

// Snapshot returns the current session state
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		State:           m.state,
		ProviderPresent: m.provider != nil,
		Balance:         m.balance,
		BalanceKnown:    m.balanceKnown,
	}
	if !m.walletAddress.IsZero() {
		s.WalletAddress = m.walletAddress.String()
	}
	if m.account != nil {
		s.AccountAddress = m.account.public.String()
	}
	if m.result != nil {
		r := *m.result
		s.Result = &r
	}
	return s
}

// DetectProvider probes for a provider. Absence clears the provider and the
// connected wallet; it is a valid state, not an error.
func (m *Manager) DetectProvider() bool {
	p, ok := m.detect()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !ok || p == nil {
		m.provider = nil
		m.clearWallet()
		m.logger.Info("wallet provider not found")
		return false
	}

	m.provider = p
	if m.subscribed != p {
		p.On(provider.EventDisconnect, m.onProviderDisconnect)
		p.On(provider.EventAccountChanged, m.onAccountChanged)
		m.subscribed = p
	}
	m.logger.Info("wallet provider detected")
	return true
}

// Connect asks the provider for its account and remembers the address.
// ErrUserRejected leaves the session untouched.
func (m *Manager) Connect(ctx context.Context) (solana.PublicKey, error) {
	p := m.currentProvider()
	if p == nil {
		return solana.PublicKey{}, ErrProviderNotFound
	}

	pub, err := p.Connect(ctx)
	if err != nil {
		m.record("connect", err)
		if errors.Is(err, provider.ErrUserRejected) {
			m.logger.Info("wallet connect rejected", zap.Error(err))
			return solana.PublicKey{}, err
		}
		return solana.PublicKey{}, fmt.Errorf("failed to connect wallet: %w", err)
	}

	m.mu.Lock()
	m.walletAddress = pub
	m.mu.Unlock()

	m.record("connect", nil)
	m.logger.Info("wallet connected", zap.Stringer("address", pub))
	return pub, nil
}

// Disconnect asks the provider to disconnect and forgets the address
func (m *Manager) Disconnect(ctx context.Context) error {
	p := m.currentProvider()
	if p == nil {
		return ErrProviderNotFound
	}

	if err := p.Disconnect(ctx); err != nil {
		m.record("disconnect", err)
		if errors.Is(err, provider.ErrUserRejected) {
			m.logger.Info("wallet disconnect rejected", zap.Error(err))
			return err
		}
		return fmt.Errorf("failed to disconnect wallet: %w", err)
	}

	m.mu.Lock()
	m.clearWallet()
	m.mu.Unlock()

	m.record("disconnect", nil)
	m.logger.Info("wallet disconnected")
	return nil
}

func (m *Manager) onProviderDisconnect(solana.PublicKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearWallet()
}

// clearWallet forgets the connected wallet. The result modal lives on the
// wallet card, so a shown result is dropped with it. Caller holds mu.
func (m *Manager) clearWallet() {
	m.walletAddress = solana.PublicKey{}
	if m.state == StateResultShown {
		m.state = StateIdle
		m.result = nil
	}
}

func (m *Manager) onAccountChanged(account solana.PublicKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.walletAddress.IsZero() {
		m.walletAddress = account
	}
}

func (m *Manager) currentProvider() provider.Provider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.provider
}

// begin moves Idle → to. Caller holds mu.
func (m *Manager) begin(to State) error {
	if m.state != StateIdle {
		return fmt.Errorf("%w: %s", ErrBusy, m.state)
	}
	m.state = to
	return nil
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Manager) record(action string, err error) {
	switch {
	case err == nil:
		metrics.CountAction(action, "ok")
	case errors.Is(err, provider.ErrUserRejected):
		metrics.CountAction(action, "rejected")
	default:
		metrics.CountAction(action, "error")
	}
}
