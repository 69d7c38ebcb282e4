package model

// KeystoreFile represents .cwt file structure.
// Network doubles as the provider marker: only "solana" keystores are offered as wallet providers.
type KeystoreFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// KeystoreSecret represents decrypted keystore data
type KeystoreSecret struct {
	PrivateKey []byte `json:"privateKey"` // full 64-byte ed25519 key (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}

// ConnectResponse represents response for POST /wallet/connect and /wallet/disconnect
type ConnectResponse struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

// ProviderResponse represents response for POST /provider/detect
type ProviderResponse struct {
	Found bool `json:"found"`
}
