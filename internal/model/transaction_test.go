package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRequestValidate(t *testing.T) {
	ptr := func(s string) *string { return &s }
	typ := func(s TransactionType) *TransactionType { return &s }
	day := func(d int) *time.Time {
		v := time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name    string
		req     HistoryRequest
		wantErr bool
	}{
		{"empty", HistoryRequest{}, false},
		{"debit", HistoryRequest{Type: typ(TransactionTypeDebit)}, false},
		{"unknown type", HistoryRequest{Type: typ("REFUND")}, true},
		{"dates ordered", HistoryRequest{From: day(1), To: day(2)}, false},
		{"dates reversed", HistoryRequest{From: day(2), To: day(1)}, true},
		{"amounts ordered", HistoryRequest{MinAmount: ptr("0.5"), MaxAmount: ptr("2")}, false},
		{"amounts reversed", HistoryRequest{MinAmount: ptr("3"), MaxAmount: ptr("2")}, true},
		{"bad amount", HistoryRequest{MinAmount: ptr("x"), MaxAmount: ptr("2")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
