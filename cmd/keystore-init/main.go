// Creates a provider keystore (.cwt) with a fresh Solana keypair.
// Usage: PROVIDER_FILE_PATH=phantom.cwt go run ./cmd/keystore-init
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/devnet-session/internal/config"
	"github.com/AlexZinkM/devnet-session/solana"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	path := config.GetProviderFilePath()
	if path == "" {
		fmt.Fprintln(os.Stderr, "PROVIDER_FILE_PATH not set")
		os.Exit(1)
	}

	if err := config.PromptForPassword(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	password, err := config.GetProviderPasswordBytes()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(password)

	address, err := solana.GenerateKeystore(path, password)
	if err != nil {
		if solana.IsFileExistsError(err) {
			fmt.Fprintln(os.Stderr, err, "(remove it or point PROVIDER_FILE_PATH elsewhere)")
		} else {
			fmt.Fprintln(os.Stderr, "generate failed:", err)
		}
		clear(password)
		os.Exit(1)
	}

	fmt.Println("keystore written:", path)
	fmt.Println("address:", address)
}
