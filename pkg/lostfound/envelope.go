package lostfound

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the body shape shared by every Lost & Found endpoint.
type Envelope struct {
	Status  int             `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// ParseEnvelope decodes a response body into an Envelope.
func ParseEnvelope(body []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	var env Envelope

	err := json.Unmarshal(body, &env)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response envelope: %w", err)
	}

	return &env, nil
}

// HasData reports whether the envelope carries a non-null data member.
func (e *Envelope) HasData() bool {
	return e != nil && present(e.Data)
}

// HasError reports whether the envelope carries a non-null error member.
func (e *Envelope) HasError() bool {
	return e != nil && present(e.Error)
}

// ErrorMessage returns the error member as text. String errors are unquoted,
// structured errors are returned as raw JSON.
func (e *Envelope) ErrorMessage() string {
	if !e.HasError() {
		return ""
	}

	var msg string
	if err := json.Unmarshal(e.Error, &msg); err == nil {
		return msg
	}

	return string(e.Error)
}

// DecodeData unmarshals the data member into v.
func (e *Envelope) DecodeData(v interface{}) error {
	if !e.HasData() {
		return ErrNoData
	}

	err := json.Unmarshal(e.Data, v)
	if err != nil {
		return fmt.Errorf("failed to unmarshal envelope data: %w", err)
	}

	return nil
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
