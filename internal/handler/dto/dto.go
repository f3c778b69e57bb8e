// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorResponse is the failure shape shared by every JSON endpoint.
// Validation and lookup failures fill Message; internal failures fill Error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is a bare success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
