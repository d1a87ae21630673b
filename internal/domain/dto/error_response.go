package dto

import "time"

// ErrorResponse is the standard payload for HTTP-level failures
// (authentication, validation, panics). Upstream data-path failures use
// StatusErrorResponse instead so the spreadsheet client can keep parsing
// a 200 body.
type ErrorResponse struct {
	Message      string    `json:"message" example:"Unauthorized"` // Human-readable summary
	ErrorDetails string    `json:"error,omitempty"`                // Underlying cause, when available
	Timestamp    time.Time `json:"timestamp"`                      // Time the error was produced
}

// Error implements the error interface so an ErrorResponse can travel
// through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	e := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		e.ErrorDetails = err.Error()
	}
	return e
}
