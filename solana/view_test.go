package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccount = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	testWallet  = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
)

func TestRenderInitial(t *testing.T) {
	v := Render(Snapshot{State: StateIdle, ProviderPresent: true})

	assert.Equal(t, "idle", v.State)
	assert.Equal(t, "Create New Solana Account", v.CreateButton.Label)
	assert.False(t, v.CreateButton.Disabled)
	assert.Nil(t, v.AccountCard)
	assert.Nil(t, v.ConnectButton)
	assert.Nil(t, v.WalletCard)
	assert.Nil(t, v.InstallAlert)
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		check func(t *testing.T, snap Snapshot)
	}{
		{
			name: "account without provider",
			snap: Snapshot{AccountAddress: testAccount},
			check: func(t *testing.T, s Snapshot) {
				v := Render(s)
				require.NotNil(t, v.AccountCard)
				assert.Equal(t, "0 SOL", v.AccountCard.Balance)
				assert.NotEmpty(t, v.AccountCard.QR)
				assert.Equal(t, "/account/airdrop", v.AccountCard.Airdrop.Action)
				require.NotNil(t, v.InstallAlert)
				assert.Equal(t, "danger", v.InstallAlert.Variant)
				assert.Nil(t, v.ConnectButton)
			},
		},
		{
			name: "creating hides the card",
			snap: Snapshot{State: StateAccountCreating, ProviderPresent: true, AccountAddress: testAccount},
			check: func(t *testing.T, s Snapshot) {
				v := Render(s)
				assert.Nil(t, v.AccountCard)
				assert.Nil(t, v.ConnectButton)
				assert.Nil(t, v.InstallAlert)
			},
		},
		{
			name: "connected with enough balance",
			snap: Snapshot{ProviderPresent: true, AccountAddress: testAccount, WalletAddress: testWallet, Balance: 4_000_000_000, BalanceKnown: true},
			check: func(t *testing.T, s Snapshot) {
				v := Render(s)
				require.NotNil(t, v.WalletCard)
				assert.Equal(t, testWallet, v.WalletCard.Address)
				assert.Equal(t, "Transfer to new wallet", v.WalletCard.Transfer.Label)
				assert.Nil(t, v.LowBalanceAlert)
				require.NotNil(t, v.DisconnectButton)
				assert.Equal(t, "/wallet/disconnect", v.DisconnectButton.Action)
				assert.Equal(t, "4 SOL", v.AccountCard.Balance)
			},
		},
		{
			name: "exactly two SOL is low",
			snap: Snapshot{ProviderPresent: true, AccountAddress: testAccount, WalletAddress: testWallet, Balance: LowBalanceLamports},
			check: func(t *testing.T, s Snapshot) {
				v := Render(s)
				require.NotNil(t, v.LowBalanceAlert)
				assert.Equal(t, "To transfer SOL, Account balance must be more than 2 SOL", v.LowBalanceAlert.Message)
			},
		},
		{
			name: "connected wallet without account",
			snap: Snapshot{ProviderPresent: true, WalletAddress: testWallet},
			check: func(t *testing.T, s Snapshot) {
				v := Render(s)
				assert.NotNil(t, v.WalletCard)
				assert.Nil(t, v.AccountCard)
			},
		},
		{
			name: "result only while shown",
			snap: Snapshot{ProviderPresent: true, AccountAddress: testAccount, WalletAddress: testWallet, Result: &TransferResult{Success: true, Signature: "sig"}},
			check: func(t *testing.T, s Snapshot) {
				assert.Nil(t, Render(s).ResultModal)

				s.State = StateResultShown
				modal := Render(s).ResultModal
				require.NotNil(t, modal)
				assert.False(t, modal.IsError)
				assert.Equal(t, "Signature: sig", modal.Body)
				assert.Equal(t, "/transfer/dismiss", modal.Close.Action)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.snap)
		})
	}
}

func TestRenderIsPure(t *testing.T) {
	s := Snapshot{ProviderPresent: true, AccountAddress: testAccount, WalletAddress: testWallet, Balance: 1}
	assert.Equal(t, Render(s), Render(s))
}

func TestResultMessage(t *testing.T) {
	title, body := ResultMessage(TransferResult{Success: true, Signature: "5xyz"})
	assert.Equal(t, "Transfer Successfully", title)
	assert.Equal(t, "Signature: 5xyz", body)

	title, body = ResultMessage(TransferResult{})
	assert.Equal(t, "Insufficient Balance", title)
	assert.Equal(t, "Airdrop more SOL to the account", body)
}
