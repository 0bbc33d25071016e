package models

// ErrorResponse is the generic error envelope used in swagger annotations.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}
