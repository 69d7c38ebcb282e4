package solana

import (
	"net/http"

	"github.com/AlexZinkM/devnet-session/internal/common"
	"github.com/AlexZinkM/devnet-session/internal/model"
)

const phantomInstallURL = "https://phantom.app/"

// Render turns a snapshot into the page. It has no side effects.
func Render(s Snapshot) model.SessionView {
	creating := s.State == StateAccountCreating
	hasAccount := s.AccountAddress != ""
	connected := s.WalletAddress != ""
	balanceLow := s.Balance <= LowBalanceLamports

	v := model.SessionView{
		State: s.State.String(),
		CreateButton: model.CreateButtonBlock{
			Label:    "Create New Solana Account",
			Disabled: hasAccount,
			Action:   "/account",
		},
	}
	if creating {
		v.CreateButton.Label = "Creating Account..."
	}

	if hasAccount && !creating {
		// a QR failure only costs the picture
		qr, _ := generateQRCode(s.AccountAddress)
		v.AccountCard = &model.AccountCardBlock{
			Header:       "New Account Created!",
			Address:      s.AccountAddress,
			QR:           qr,
			Balance:      common.FormatSOL(s.Balance) + " SOL",
			BalanceKnown: s.BalanceKnown,
			BalanceLow:   balanceLow,
			Airdrop:      action("Airdrop SOL", "/account/airdrop"),
		}
	}

	if s.ProviderPresent && !connected && hasAccount && !creating {
		b := action("Connect To Phantom Wallet", "/wallet/connect")
		v.ConnectButton = &b
	}

	if s.ProviderPresent && connected {
		v.WalletCard = &model.WalletCardBlock{
			Header:   "Phantom Wallet Account",
			Address:  s.WalletAddress,
			Transfer: action("Transfer to new wallet", "/transfer"),
		}
		if balanceLow {
			v.LowBalanceAlert = &model.AlertBlock{
				Variant: "warning",
				Message: "To transfer SOL, Account balance must be more than 2 SOL",
			}
		}
		if s.State == StateResultShown && s.Result != nil {
			v.ResultModal = resultModal(*s.Result)
		}
		b := action("Disconnect", "/wallet/disconnect")
		v.DisconnectButton = &b
	}

	if !s.ProviderPresent && hasAccount && !creating {
		v.InstallAlert = &model.AlertBlock{
			Variant: "danger",
			Message: "No provider found. Install Phantom Browser extension",
			Link:    phantomInstallURL,
		}
	}

	return v
}

func resultModal(r TransferResult) *model.ModalBlock {
	title, body := ResultMessage(r)
	return &model.ModalBlock{
		Title:   title,
		Body:    body,
		IsError: !r.Success,
		Close:   action("Close", "/transfer/dismiss"),
	}
}

// ResultMessage is the title and body shown for a transfer result
func ResultMessage(r TransferResult) (title, body string) {
	if !r.Success {
		return "Insufficient Balance", "Airdrop more SOL to the account"
	}
	return "Transfer Successfully", "Signature: " + r.Signature
}

func action(label, path string) model.ActionBlock {
	return model.ActionBlock{Label: label, Method: http.MethodPost, Action: path}
}
