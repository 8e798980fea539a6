package types

// MessageEnvelope is the wire shape every wishlist endpoint responds with:
// a human-readable message plus an optional data payload.
type MessageEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope carries failure responses; clients surface Message directly.
type ErrorEnvelope struct {
	Message string `json:"message"`
}
