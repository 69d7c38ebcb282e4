// Package provider implements the wallet capability the session negotiates for:
// something that can connect, disconnect and sign on behalf of an external account.
package provider

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// Event is a provider lifecycle notification
type Event string

const (
	EventConnect        Event = "connect"
	EventDisconnect     Event = "disconnect"
	EventAccountChanged Event = "accountChanged"
)

var (
	// ErrUserRejected mirrors the wallet's 4001 "User rejected the request."
	ErrUserRejected = errors.New("user rejected the request")
	// ErrNotConnected is returned by SignTransaction before Connect
	ErrNotConnected = errors.New("provider is not connected")
)

// Handler receives the account an event refers to (zero key for disconnect)
type Handler func(account solana.PublicKey)

// Provider is the contract the session relies on.
type Provider interface {
	Connect(ctx context.Context) (solana.PublicKey, error)
	Disconnect(ctx context.Context) error
	SignTransaction(ctx context.Context, tx *solana.Transaction) error
	On(event Event, handler Handler)
}

// PasswordFunc returns a copy of the keystore password; the caller zeroes it
type PasswordFunc func() ([]byte, error)
