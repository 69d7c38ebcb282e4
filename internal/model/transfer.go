package model

// TransferResponse represents response for POST /transfer.
// A failed transfer is still a 200: the result is what the modal shows.
type TransferResponse struct {
	Success   bool   `json:"success"`
	Signature string `json:"signature,omitempty"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}
