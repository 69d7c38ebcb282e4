package solana

import (
	"context"
	"fmt"
	"sort"

	"github.com/AlexZinkM/devnet-session/internal/common"
	"github.com/AlexZinkM/devnet-session/internal/model"
)

// History gets the local account's SOL transactions with filtering, newest first
func (m *Manager) History(ctx context.Context, req *model.HistoryRequest) (*model.HistoryResponse, error) {
	m.mu.Lock()
	if m.account == nil {
		m.mu.Unlock()
		return nil, ErrNoAccount
	}
	owner := m.account.public
	m.mu.Unlock()

	solanaTxs, err := m.chain.GetTransactions(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	result := make([]model.Transaction, 0, len(solanaTxs))
	for _, tx := range solanaTxs {
		if req.Type != nil && string(*req.Type) != tx.Type {
			continue
		}
		if req.TxID != nil && *req.TxID != tx.TxID {
			continue
		}
		if req.From != nil && tx.Timestamp.Before(*req.From) {
			continue
		}
		if req.To != nil && tx.Timestamp.After(*req.To) {
			continue
		}

		// integer comparison, no float precision issues
		if req.MinAmount != nil {
			cmp, err := common.CompareSOLAmounts(tx.Amount, *req.MinAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare min amount: %w", err)
			}
			if cmp < 0 {
				continue
			}
		}
		if req.MaxAmount != nil {
			cmp, err := common.CompareSOLAmounts(tx.Amount, *req.MaxAmount)
			if err != nil {
				return nil, fmt.Errorf("failed to compare max amount: %w", err)
			}
			if cmp > 0 {
				continue
			}
		}

		result = append(result, model.Transaction{
			Type:        model.TransactionType(tx.Type),
			TxID:        tx.TxID,
			From:        tx.From,
			To:          tx.To,
			Amount:      tx.Amount,
			FeeSOL:      tx.FeeSOL,
			Timestamp:   tx.Timestamp,
			BlockNumber: tx.BlockNumber,
			Status:      tx.Status,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	var received, sent uint64
	for _, tx := range result {
		lamports, err := common.SOLToLamports(tx.Amount)
		if err != nil {
			continue
		}
		switch tx.Type {
		case model.TransactionTypeDebit:
			received += lamports
		case model.TransactionTypeCredit:
			sent += lamports
		}
	}

	return &model.HistoryResponse{
		Address:       owner.String(),
		TotalReceived: common.LamportsToSOL(received),
		TotalSent:     common.LamportsToSOL(sent),
		Transactions:  result,
	}, nil
}
