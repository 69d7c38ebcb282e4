package client

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSOLTransferSent(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	dest := solana.NewWallet().PublicKey()
	meta := &rpc.TransactionMeta{
		Fee:          5000,
		PreBalances:  []uint64{3_000_000_000, 0, 1},
		PostBalances: []uint64{999_995_000, 2_000_000_000, 1},
	}

	got, ok := parseSOLTransfer(owner, []solana.PublicKey{owner, dest, solana.SystemProgramID}, meta)
	require.True(t, ok)
	assert.Equal(t, "CREDIT", got.Type)
	assert.Equal(t, "2.000000000", got.Amount)
	assert.Equal(t, "0.000005000", got.FeeSOL)
	assert.Equal(t, owner.String(), got.From)
	assert.Equal(t, dest.String(), got.To)
	assert.Equal(t, "success", got.Status)
}

func TestParseSOLTransferReceived(t *testing.T) {
	faucet := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	meta := &rpc.TransactionMeta{
		Fee:          5000,
		PreBalances:  []uint64{10_000_000_000, 0},
		PostBalances: []uint64{7_999_995_000, 2_000_000_000},
	}

	got, ok := parseSOLTransfer(owner, []solana.PublicKey{faucet, owner}, meta)
	require.True(t, ok)
	assert.Equal(t, "DEBIT", got.Type)
	assert.Equal(t, "2.000000000", got.Amount)
	assert.Equal(t, "0", got.FeeSOL)
	assert.Equal(t, faucet.String(), got.From)
	assert.Equal(t, owner.String(), got.To)
}

func TestParseSOLTransferFeeOnly(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	meta := &rpc.TransactionMeta{
		Fee:          5000,
		Err:          map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
		PreBalances:  []uint64{1_000_000_000},
		PostBalances: []uint64{999_995_000},
	}

	_, ok := parseSOLTransfer(owner, []solana.PublicKey{owner}, meta)
	assert.False(t, ok)
}

func TestParseSOLTransferNotInvolved(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()
	meta := &rpc.TransactionMeta{PreBalances: []uint64{1}, PostBalances: []uint64{2}}

	_, ok := parseSOLTransfer(owner, []solana.PublicKey{other}, meta)
	assert.False(t, ok)

	_, ok = parseSOLTransfer(owner, []solana.PublicKey{owner}, nil)
	assert.False(t, ok)
}
