package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AlexZinkM/devnet-session/internal/common"
	"github.com/AlexZinkM/devnet-session/internal/model"
	"github.com/AlexZinkM/devnet-session/solana"

	"go.uber.org/zap"
)

// SessionHandler exposes the devnet session over HTTP
type SessionHandler struct {
	session *solana.Manager
	logger  *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(session *solana.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		session: session,
		logger:  logger,
	}
}

// Session handles GET /session
// @Summary      Get the page
// @Description  Renders the current session as view blocks
// @Tags         session
// @Produce      json
// @Success      200  {object}  model.SessionView
// @Router       /session [get]
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, solana.Render(h.session.Snapshot()))
}

// DetectProvider handles POST /provider/detect
// @Summary      Probe for a wallet provider
// @Description  Re-checks the configured keystore for a Solana wallet provider
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ProviderResponse
// @Router       /provider/detect [post]
func (h *SessionHandler) DetectProvider(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, model.ProviderResponse{Found: h.session.DetectProvider()})
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Asks the provider for its account and stores the address
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      403  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	address, err := h.session.Connect(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{Connected: true, Address: address.String()})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallet/disconnect [post]
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	if err := h.session.Disconnect(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{Connected: false})
}

// CreateAccount handles POST /account
// @Summary      Create local account
// @Description  Generates a fresh keypair held in memory for this session
// @Tags         account
// @Produce      json
// @Success      201  {object}  model.CreateAccountResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /account [post]
func (h *SessionHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	address, err := h.session.CreateAccount()
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateAccountResponse{Address: address.String()})
}

// RefreshBalance handles POST /account/balance
// @Summary      Refresh balance
// @Description  Reads the local account balance from devnet
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /account/balance [post]
func (h *SessionHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	lamports, err := h.session.RefreshBalance(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.BalanceResponse{
		Address:  h.session.Snapshot().AccountAddress,
		Lamports: lamports,
		SOL:      common.FormatSOL(lamports),
	})
}

// Airdrop handles POST /account/airdrop
// @Summary      Airdrop SOL
// @Description  Requests 2 SOL from the devnet faucet and waits for confirmation
// @Tags         account
// @Produce      json
// @Success      200  {object}  model.AirdropResponse
// @Failure      409  {object}  model.ErrorResponse
// @Failure      502  {object}  model.ErrorResponse
// @Router       /account/airdrop [post]
func (h *SessionHandler) Airdrop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	sig, err := h.session.RequestAirdrop(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	lamports := h.session.Snapshot().Balance
	writeJSON(w, http.StatusOK, model.AirdropResponse{
		Signature: sig.String(),
		Lamports:  lamports,
		SOL:       common.FormatSOL(lamports),
	})
}

// Transfer handles POST /transfer
// @Summary      Transfer to the connected wallet
// @Description  Sends 2 SOL from the local account to the connected wallet. A failed send is reported in the body, not the status.
// @Tags         transfer
// @Produce      json
// @Success      200  {object}  model.TransferResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /transfer [post]
func (h *SessionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.session.Transfer(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	title, message := solana.ResultMessage(result)
	writeJSON(w, http.StatusOK, model.TransferResponse{
		Success:   result.Success,
		Signature: result.Signature,
		Title:     title,
		Message:   message,
	})
}

// DismissResult handles POST /transfer/dismiss
// @Summary      Close the transfer result
// @Tags         transfer
// @Produce      json
// @Success      200  {object}  model.SessionView
// @Router       /transfer/dismiss [post]
func (h *SessionHandler) DismissResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.session.DismissResult()
	writeJSON(w, http.StatusOK, solana.Render(h.session.Snapshot()))
}

// TransactionHistory handles GET /account/transactions
// @Summary      Get local account transactions
// @Description  Gets SOL transactions of the local account with filtering capability
// @Tags         account
// @Produce      json
// @Param        type       query     string   false  "Transaction type: DEBIT or CREDIT"
// @Param        txId       query     string   false  "Transaction ID"
// @Param        from       query     string   false  "Start date (YYYY-MM-DD)"
// @Param        to         query     string   false  "End date (YYYY-MM-DD)"
// @Param        minAmount  query     string   false  "Minimum amount in SOL"
// @Param        maxAmount  query     string   false  "Maximum amount in SOL"
// @Success      200  {object}  model.HistoryResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /account/transactions [get]
func (h *SessionHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	var req model.HistoryRequest
	query := r.URL.Query()

	// Parse date parameters (YYYY-MM-DD)
	const dateLayout = "2006-01-02"
	if fromStr := query.Get("from"); fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			badRequest(w, "invalid from date: use YYYY-MM-DD (e.g. 2006-01-02)")
			return
		}
		req.From = &t
	}
	if toStr := query.Get("to"); toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			badRequest(w, "invalid to date: use YYYY-MM-DD (e.g. 2006-01-02)")
			return
		}
		// End of day so filter is inclusive
		t = t.Add(24*time.Hour - time.Nanosecond)
		req.To = &t
	}

	if typeStr := query.Get("type"); typeStr != "" {
		txType := model.TransactionType(typeStr)
		req.Type = &txType
	}
	if txID := query.Get("txId"); txID != "" {
		req.TxID = &txID
	}
	if minAmount := query.Get("minAmount"); minAmount != "" {
		req.MinAmount = &minAmount
	}
	if maxAmount := query.Get("maxAmount"); maxAmount != "" {
		req.MaxAmount = &maxAmount
	}

	if err := req.Validate(); err != nil {
		badRequest(w, err.Error())
		return
	}

	history, err := h.session.History(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// writeError maps session errors to status codes. Anything unrecognised
// came from the cluster.
func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusBadGateway, model.CodeRPC
	switch {
	case errors.Is(err, solana.ErrProviderNotFound):
		status, code = http.StatusNotFound, model.CodeProviderNotFound
	case errors.Is(err, solana.ErrUserRejected):
		status, code = http.StatusForbidden, model.CodeUserRejected
	case errors.Is(err, solana.ErrNoAccount):
		status, code = http.StatusConflict, model.CodeNoAccount
	case errors.Is(err, solana.ErrNotConnected):
		status, code = http.StatusConflict, model.CodeNotConnected
	case errors.Is(err, solana.ErrAccountExists):
		status, code = http.StatusConflict, model.CodeAccountExists
	case errors.Is(err, solana.ErrBusy):
		status, code = http.StatusConflict, model.CodeBusy
	default:
		h.logger.Error("session action failed", zap.Error(err))
	}

	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msg, Code: model.CodeBadRequest})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
