package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the keystore password is prompted at runtime and stored in memory - use GetProviderPasswordBytes()
type Config struct {
	Port             string  `envconfig:"PORT" default:"8080"`
	SolanaRPCURL     string  `envconfig:"SOLANA_RPC_URL" default:"https://api.devnet.solana.com"`
	ProviderFilePath string  `envconfig:"PROVIDER_FILE_PATH"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"info"`
	RPCRateLimit     float64 `envconfig:"RPC_RATE_LIMIT" default:"5"`
	RPCBurst         int     `envconfig:"RPC_BURST" default:"5"`
	ConfirmPollMs    int     `envconfig:"CONFIRM_POLL_MS" default:"500"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate checks values envconfig cannot check by itself.
func (c *Config) Validate() error {
	if c.RPCRateLimit <= 0 {
		return errors.New("RPC_RATE_LIMIT must be positive")
	}
	if c.RPCBurst < 1 {
		return errors.New("RPC_BURST must be at least 1")
	}
	if c.ConfirmPollMs <= 0 {
		return errors.New("CONFIRM_POLL_MS must be positive")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetProviderFilePath returns path to the provider keystore (.cwt), empty if not configured
func GetProviderFilePath() string {
	return Get().ProviderFilePath
}

// GetConfirmPollInterval returns how often signature statuses are polled while confirming
func GetConfirmPollInterval() time.Duration {
	return time.Duration(Get().ConfirmPollMs) * time.Millisecond
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter keystore password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// GetProviderPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetProviderPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
