package model

import (
	"fmt"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/common"
)

// TransactionType transaction type
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// Transaction represents a SOL movement of the local account
type Transaction struct {
	Type        TransactionType `json:"type"`
	TxID        string          `json:"txId"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      string          `json:"amount"`
	FeeSOL      string          `json:"feeSOL"` // SOL the local account paid as fee
	Timestamp   time.Time       `json:"timestamp"`
	BlockNumber int64           `json:"blockNumber"`
	Status      string          `json:"status"`
}

// HistoryResponse represents response for GET /account/transactions
type HistoryResponse struct {
	Address       string        `json:"address"`
	TotalReceived string        `json:"total_received_SOL"`
	TotalSent     string        `json:"total_sent_SOL"`
	Transactions  []Transaction `json:"transactions"`
}

// HistoryRequest represents request parameters for GET /account/transactions
type HistoryRequest struct {
	Type      *TransactionType
	TxID      *string
	From      *time.Time
	To        *time.Time
	MinAmount *string
	MaxAmount *string
}

// Validate validates HistoryRequest filter parameters.
func (r *HistoryRequest) Validate() error {
	if r.Type != nil && *r.Type != TransactionTypeDebit && *r.Type != TransactionTypeCredit {
		return fmt.Errorf("type must be DEBIT or CREDIT")
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if r.MinAmount != nil && r.MaxAmount != nil {
		cmp, err := common.CompareSOLAmounts(*r.MinAmount, *r.MaxAmount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minAmount must be less than or equal to maxAmount")
		}
	}
	return nil
}
