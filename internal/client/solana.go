package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/common"
	"github.com/AlexZinkM/devnet-session/internal/metrics"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const historyLimit = 100

var (
	// ErrBlockhashExpired means the chain moved past lastValidBlockHeight before confirmation
	ErrBlockhashExpired = errors.New("block height exceeded: transaction expired")
	// ErrTransactionFailed means the cluster executed the transaction and it failed
	ErrTransactionFailed = errors.New("transaction failed")
)

// Blockhash is a recent blockhash with its expiry bound
type Blockhash struct {
	Hash                 solana.Hash
	LastValidBlockHeight uint64
}

// SolanaClient is a client for working with Solana RPC
type SolanaClient struct {
	rpcClient    *rpc.Client
	rpcURL       string
	limiter      *rate.Limiter
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewSolanaClient creates a new Solana client for rpcURL.
// Every call waits on limiter first; the public devnet endpoint throttles aggressively.
func NewSolanaClient(rpcURL string, limiter *rate.Limiter, pollInterval time.Duration, logger *zap.Logger) *SolanaClient {
	return &SolanaClient{
		rpcClient:    rpc.New(rpcURL),
		rpcURL:       rpcURL,
		limiter:      limiter,
		pollInterval: pollInterval,
		logger:       logger.With(zap.String("rpc", rpcURL)),
	}
}

// GetBalance gets SOL balance in lamports at confirmed commitment
func (c *SolanaClient) GetBalance(ctx context.Context, owner solana.PublicKey) (lamports uint64, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("getBalance", start, err) }(time.Now())

	balance, err := c.rpcClient.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// RequestAirdrop asks the cluster faucet for lamports
func (c *SolanaClient) RequestAirdrop(ctx context.Context, owner solana.PublicKey, lamports uint64) (sig solana.Signature, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return solana.Signature{}, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("requestAirdrop", start, err) }(time.Now())

	sig, err = c.rpcClient.RequestAirdrop(ctx, owner, lamports, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to request airdrop: %w", err)
	}
	c.logger.Debug("airdrop requested", zap.Stringer("account", owner), zap.String("sol", common.FormatSOL(lamports)), zap.Stringer("signature", sig))
	return sig, nil
}

// GetLatestBlockhash gets latest blockhash (GetRecentBlockhash is deprecated)
func (c *SolanaClient) GetLatestBlockhash(ctx context.Context) (bh Blockhash, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Blockhash{}, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("getLatestBlockhash", start, err) }(time.Now())

	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return Blockhash{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	if recent.Value == nil {
		return Blockhash{}, errors.New("failed to get latest blockhash: empty response")
	}
	return Blockhash{
		Hash:                 recent.Value.Blockhash,
		LastValidBlockHeight: recent.Value.LastValidBlockHeight,
	}, nil
}

// ConfirmTransaction polls the signature status until it is confirmed, failed,
// or the block height passes lastValidBlockHeight.
func (c *SolanaClient) ConfirmTransaction(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkSignature(ctx, sig)
		if err != nil || done {
			return err
		}

		height, err := c.getBlockHeight(ctx)
		if err != nil {
			return err
		}
		if height > lastValidBlockHeight {
			return fmt.Errorf("%w: signature %s", ErrBlockhashExpired, sig)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// checkSignature reports whether sig reached confirmed commitment
func (c *SolanaClient) checkSignature(ctx context.Context, sig solana.Signature) (done bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("getSignatureStatuses", start, err) }(time.Now())

	statuses, err := c.rpcClient.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return false, fmt.Errorf("failed to get signature status: %w", err)
	}
	if len(statuses.Value) == 0 || statuses.Value[0] == nil {
		return false, nil
	}

	status := statuses.Value[0]
	if status.Err != nil {
		return true, fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err)
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return true, nil
	}
	return false, nil
}

func (c *SolanaClient) getBlockHeight(ctx context.Context) (height uint64, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("getBlockHeight", start, err) }(time.Now())

	height, err = c.rpcClient.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get block height: %w", err)
	}
	return height, nil
}

// SendAndConfirmTransaction submits a signed tx and waits for confirmation
func (c *SolanaClient) SendAndConfirmTransaction(ctx context.Context, tx *solana.Transaction, lastValidBlockHeight uint64) (solana.Signature, error) {
	sig, err := c.sendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}

	if err := c.ConfirmTransaction(ctx, sig, lastValidBlockHeight); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to confirm transaction %s: %w", sig, err)
	}
	return sig, nil
}

func (c *SolanaClient) sendTransaction(ctx context.Context, tx *solana.Transaction) (sig solana.Signature, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return solana.Signature{}, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("sendTransaction", start, err) }(time.Now())

	sig, err = c.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false, // Transaction validation before node
			PreflightCommitment: rpc.CommitmentConfirmed,
		},
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// GetTransactions gets SOL movements of owner from its latest signatures
func (c *SolanaClient) GetTransactions(ctx context.Context, owner solana.PublicKey) ([]SolanaTransaction, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	limit := historyLimit
	start := time.Now()
	sigs, err := c.rpcClient.GetSignaturesForAddressWithOpts(ctx, owner, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	metrics.ObserveRPC("getSignaturesForAddress", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get signatures: %w", err)
	}

	transactions := make([]SolanaTransaction, 0, len(sigs))
	for _, s := range sigs {
		tx, err := c.getTransaction(ctx, s.Signature)
		if err != nil {
			return nil, err
		}

		decoded, err := tx.Transaction.GetTransaction()
		if err != nil {
			c.logger.Warn("skipping undecodable transaction", zap.Stringer("signature", s.Signature), zap.Error(err))
			continue
		}

		timestamp := time.Now()
		if tx.BlockTime != nil {
			timestamp = time.Unix(int64(*tx.BlockTime), 0)
		}

		parsed, ok := parseSOLTransfer(owner, decoded.Message.AccountKeys, tx.Meta)
		if !ok {
			continue
		}
		parsed.TxID = s.Signature.String()
		parsed.Timestamp = timestamp
		parsed.BlockNumber = int64(tx.Slot)
		transactions = append(transactions, parsed)
	}

	return transactions, nil
}

func (c *SolanaClient) getTransaction(ctx context.Context, sig solana.Signature) (out *rpc.GetTransactionResult, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	defer func(start time.Time) { metrics.ObserveRPC("getTransaction", start, err) }(time.Now())

	// maxVersion is hardcoded - new version support requires library update anyway
	maxVersion := uint64(0)
	out, err = c.rpcClient.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", sig, err)
	}
	return out, nil
}

// parseSOLTransfer extracts owner's SOL movement, separating the fee when owner paid it.
// Returns false when owner only paid a fee or is not part of the transaction.
func parseSOLTransfer(owner solana.PublicKey, accountKeys []solana.PublicKey, meta *rpc.TransactionMeta) (SolanaTransaction, bool) {
	if meta == nil {
		return SolanaTransaction{}, false
	}

	ownerIndex := -1
	for i, key := range accountKeys {
		if key.Equals(owner) {
			ownerIndex = i
			break
		}
	}
	if ownerIndex < 0 || ownerIndex >= len(meta.PreBalances) || ownerIndex >= len(meta.PostBalances) {
		return SolanaTransaction{}, false
	}

	delta := int64(meta.PostBalances[ownerIndex]) - int64(meta.PreBalances[ownerIndex])

	// Fee payer is index 0
	isFeePayer := ownerIndex == 0
	if isFeePayer {
		delta += int64(meta.Fee)
	}
	if delta == 0 {
		return SolanaTransaction{}, false
	}

	status := "success"
	if meta.Err != nil {
		status = "failed"
	}

	out := SolanaTransaction{
		FeeSOL: "0",
		Status: status,
	}

	if delta > 0 {
		// Received SOL
		out.Type = "DEBIT"
		out.Amount = common.LamportsToSOL(uint64(delta))
		out.To = owner.String()
		out.From = counterparty(owner, accountKeys, meta, func(pre, post uint64) bool { return pre > post })
	} else {
		// Sent SOL
		out.Type = "CREDIT"
		out.Amount = common.LamportsToSOL(uint64(-delta))
		out.From = owner.String()
		out.To = counterparty(owner, accountKeys, meta, func(pre, post uint64) bool { return post > pre })
		if isFeePayer {
			out.FeeSOL = common.LamportsToSOL(meta.Fee)
		}
	}
	return out, true
}

func counterparty(owner solana.PublicKey, keys []solana.PublicKey, meta *rpc.TransactionMeta, moved func(pre, post uint64) bool) string {
	for i, key := range keys {
		if i >= len(meta.PreBalances) || i >= len(meta.PostBalances) {
			break
		}
		if !key.Equals(owner) && moved(meta.PreBalances[i], meta.PostBalances[i]) {
			return key.String()
		}
	}
	return ""
}

// SolanaTransaction represents a SOL movement of one account
type SolanaTransaction struct {
	Type        string
	TxID        string
	From        string
	To          string
	Amount      string
	FeeSOL      string // SOL the account paid as fee
	Timestamp   time.Time
	BlockNumber int64
	Status      string
}
