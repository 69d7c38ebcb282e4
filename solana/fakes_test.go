package solana

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/client"
	"github.com/AlexZinkM/devnet-session/internal/provider"

	"github.com/gagliardetto/solana-go"
)

const testFee = 5000

type fakeChain struct {
	mu           sync.Mutex
	balances     map[solana.PublicKey]uint64
	airdropErr   error
	confirmErr   error
	sendErr      error
	sendCalls    int
	sendGate     chan struct{} // when set, SendAndConfirmTransaction blocks until closed
	transactions []client.SolanaTransaction
}

func newFakeChain() *fakeChain {
	return &fakeChain{balances: make(map[solana.PublicKey]uint64)}
}

func (c *fakeChain) GetBalance(_ context.Context, owner solana.PublicKey) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balances[owner], nil
}

func (c *fakeChain) RequestAirdrop(_ context.Context, owner solana.PublicKey, lamports uint64) (solana.Signature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.airdropErr != nil {
		return solana.Signature{}, c.airdropErr
	}
	c.balances[owner] += lamports
	return solana.Signature{7}, nil
}

func (c *fakeChain) GetLatestBlockhash(context.Context) (client.Blockhash, error) {
	return client.Blockhash{Hash: solana.Hash{9}, LastValidBlockHeight: 150}, nil
}

func (c *fakeChain) ConfirmTransaction(context.Context, solana.Signature, uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmErr
}

func (c *fakeChain) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction, _ uint64) (solana.Signature, error) {
	c.mu.Lock()
	c.sendCalls++
	gate := c.sendGate
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return solana.Signature{}, ctx.Err()
		}
	}

	if err := tx.VerifySignatures(); err != nil {
		return solana.Signature{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return solana.Signature{}, c.sendErr
	}

	from, to := tx.Message.AccountKeys[0], tx.Message.AccountKeys[1]
	if c.balances[from] < TransferLamports+testFee {
		return solana.Signature{}, errors.New("attempt to debit an account but found no record of a prior credit")
	}
	c.balances[from] -= TransferLamports + testFee
	c.balances[to] += TransferLamports
	return tx.Signatures[0], nil
}

func (c *fakeChain) GetTransactions(context.Context, solana.PublicKey) ([]client.SolanaTransaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transactions, nil
}

type fakeProvider struct {
	mu           sync.Mutex
	account      solana.PublicKey
	rejectNext   bool
	connectCalls int
	handlers     map[provider.Event][]provider.Handler
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		account:  solana.NewWallet().PublicKey(),
		handlers: make(map[provider.Event][]provider.Handler),
	}
}

func (p *fakeProvider) Connect(context.Context) (solana.PublicKey, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connectCalls++
	if p.rejectNext {
		p.rejectNext = false
		return solana.PublicKey{}, provider.ErrUserRejected
	}
	return p.account, nil
}

func (p *fakeProvider) Disconnect(context.Context) error {
	return nil
}

func (p *fakeProvider) SignTransaction(context.Context, *solana.Transaction) error {
	return errors.New("not used")
}

func (p *fakeProvider) On(event provider.Event, handler provider.Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[event] = append(p.handlers[event], handler)
}

func (p *fakeProvider) emit(event provider.Event, account solana.PublicKey) {
	p.mu.Lock()
	handlers := p.handlers[event]
	p.mu.Unlock()
	for _, h := range handlers {
		h(account)
	}
}

func detectAlways(p provider.Provider) DetectFunc {
	return func() (provider.Provider, bool) { return p, true }
}

func detectNever() (provider.Provider, bool) {
	return nil, false
}

const eventually = time.Second
