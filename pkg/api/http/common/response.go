package common

import (
	"encoding/json"
)

// AnalyzeResponse is the part of an analyze response we need to classify it.
// The full body is kept as raw bytes by the client.
type AnalyzeResponse struct {
	Status        string          `json:"status"`
	StatusMessage string          `json:"statusMessage,omitempty"`
	Errors        json.RawMessage `json:"errors,omitempty"`
}

// FieldError is a single entry of an error response's "errors" list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
