package types

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-Id"

// SuccessEnvelope wraps every successful JSON API response.
type SuccessEnvelope struct {
	Data      any    `json:"data"`
	RequestID string `json:"request_id,omitempty"`
}

// APIError is the public part of a failed request. Retryable tells API clients
// whether repeating the same click or page call can succeed.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Details   any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error     APIError `json:"error"`
	RequestID string   `json:"request_id,omitempty"`
}
