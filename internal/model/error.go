package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeProviderNotFound = "PROVIDER_NOT_FOUND"
	CodeUserRejected     = "USER_REJECTED"
	CodeNoAccount        = "NO_ACCOUNT"
	CodeNotConnected     = "NOT_CONNECTED"
	CodeAccountExists    = "ACCOUNT_EXISTS"
	CodeBusy             = "BUSY"
	CodeRPC              = "RPC_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
)
