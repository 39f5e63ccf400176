package types

// ErrorResponse is the wire shape of every error body. Message is the
// human-readable summary, Error the specific underlying detail.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
