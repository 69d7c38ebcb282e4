package model

// CreateAccountResponse represents response for POST /account
type CreateAccountResponse struct {
	Address string `json:"address"`
}

// BalanceResponse represents response for POST /account/balance
type BalanceResponse struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
	SOL      string `json:"sol"`
}

// AirdropResponse represents response for POST /account/airdrop
type AirdropResponse struct {
	Signature string `json:"signature"`
	Lamports  uint64 `json:"lamports"`
	SOL       string `json:"sol"`
}
