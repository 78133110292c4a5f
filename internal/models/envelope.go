package models

import (
	"bytes"
	"encoding/json"
)

// Envelope wraps every successful response body.
type Envelope[T any] struct {
	Success bool `json:"success,omitempty"`
	Data    T    `json:"data"`
}

// MessageEnvelope is the body of a successful request with nothing to
// return, such as a delete.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorEnvelope is the body of a failed request.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// ErrorMessage pulls a human-readable message out of an error body. It
// accepts {"error": "msg"}, {"error": {"message": "msg"}} and
// {"message": "msg"}; anything else yields "".
func ErrorMessage(body []byte) string {
	var raw struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}

	if len(raw.Error) > 0 && !bytes.Equal(raw.Error, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw.Error, &s); err == nil {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return raw.Message
}
