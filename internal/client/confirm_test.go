package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"
)

const lastValid = 150

// rpcNode answers getSignatureStatuses and getBlockHeight with scripted results
type rpcNode struct {
	mu       sync.Mutex
	statuses []string // raw JSON status per poll, the last one repeats
	height   uint64
	polls    int
}

func (n *rpcNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	var result string
	switch req.Method {
	case "getSignatureStatuses":
		status := n.statuses[min(n.polls, len(n.statuses)-1)]
		n.polls++
		result = fmt.Sprintf(`{"context":{"slot":1},"value":[%s]}`, status)
	case "getBlockHeight":
		result = fmt.Sprintf("%d", n.height)
	default:
		http.Error(w, "unexpected method "+req.Method, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, result)
}

func (n *rpcNode) pollCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.polls
}

func newTestClient(t *testing.T, node *rpcNode, poll time.Duration) *SolanaClient {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)
	return NewSolanaClient(srv.URL, rate.NewLimiter(rate.Inf, 1), poll, zaptest.NewLogger(t))
}

const (
	pending   = `null`
	processed = `{"slot":1,"confirmations":0,"err":null,"confirmationStatus":"processed"}`
	confirmed = `{"slot":2,"confirmations":1,"err":null,"confirmationStatus":"confirmed"}`
	finalized = `{"slot":3,"confirmations":null,"err":null,"confirmationStatus":"finalized"}`
	failed    = `{"slot":2,"confirmations":1,"err":{"InstructionError":[0,{"Custom":1}]},"confirmationStatus":"confirmed"}`
)

func TestConfirmTransaction(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []string
		height    uint64
		wantErr   error
		wantPolls int
	}{
		{"confirmed after pending polls", []string{pending, processed, confirmed}, 100, nil, 3},
		{"finalized at once", []string{finalized}, 100, nil, 1},
		{"failed status", []string{pending, failed}, 100, ErrTransactionFailed, 2},
		{"expired block height", []string{pending}, lastValid + 1, ErrBlockhashExpired, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &rpcNode{statuses: tt.statuses, height: tt.height}
			c := newTestClient(t, node, time.Millisecond)

			err := c.ConfirmTransaction(context.Background(), solana.Signature{1}, lastValid)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantPolls, node.pollCount())
		})
	}
}

func TestConfirmTransactionAtLastValidHeightKeepsPolling(t *testing.T) {
	node := &rpcNode{statuses: []string{pending, confirmed}, height: lastValid}
	c := newTestClient(t, node, time.Millisecond)

	require.NoError(t, c.ConfirmTransaction(context.Background(), solana.Signature{1}, lastValid))
	assert.Equal(t, 2, node.pollCount())
}

func TestConfirmTransactionCanceled(t *testing.T) {
	node := &rpcNode{statuses: []string{pending}, height: 100}
	c := newTestClient(t, node, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.ConfirmTransaction(ctx, solana.Signature{1}, lastValid)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, node.pollCount())
}
