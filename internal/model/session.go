package model

// SessionView is the rendered page: every block is nil when it is not shown.
type SessionView struct {
	State            string            `json:"state"`
	CreateButton     CreateButtonBlock `json:"createButton"`
	AccountCard      *AccountCardBlock `json:"accountCard,omitempty"`
	ConnectButton    *ActionBlock      `json:"connectButton,omitempty"`
	WalletCard       *WalletCardBlock  `json:"walletCard,omitempty"`
	LowBalanceAlert  *AlertBlock       `json:"lowBalanceAlert,omitempty"`
	ResultModal      *ModalBlock       `json:"resultModal,omitempty"`
	DisconnectButton *ActionBlock      `json:"disconnectButton,omitempty"`
	InstallAlert     *AlertBlock       `json:"installAlert,omitempty"`
}

// CreateButtonBlock is the "create account" button, always rendered
type CreateButtonBlock struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Action   string `json:"action"`
}

// AccountCardBlock shows the locally generated account
type AccountCardBlock struct {
	Header       string      `json:"header"`
	Address      string      `json:"address"`
	QR           string      `json:"qr,omitempty"` // base64 PNG
	Balance      string      `json:"balance"`      // e.g. "2 SOL"
	BalanceKnown bool        `json:"balanceKnown"`
	BalanceLow   bool        `json:"balanceLow"`
	Airdrop      ActionBlock `json:"airdrop"`
}

// WalletCardBlock shows the connected provider account
type WalletCardBlock struct {
	Header   string      `json:"header"`
	Address  string      `json:"address"`
	Transfer ActionBlock `json:"transfer"`
}

// ActionBlock is a button bound to an API call
type ActionBlock struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Action string `json:"action"`
}

// AlertBlock is a banner
type AlertBlock struct {
	Variant string `json:"variant"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// ModalBlock is the transfer result dialog
type ModalBlock struct {
	Title   string      `json:"title"`
	Body    string      `json:"body"`
	IsError bool        `json:"isError"`
	Close   ActionBlock `json:"close"`
}
