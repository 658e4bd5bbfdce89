package models

// ErrorResponse represents error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the acknowledgement body of operations without a record to return
type MessageResponse struct {
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewErrorResponseWithDetails creates an error response carrying extra detail
func NewErrorResponseWithDetails(message, details string) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}
