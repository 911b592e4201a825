package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyPayload = errors.New("empty request payload")

// DecodePayload accepts the write payload as a JSON object, as {"data": <object>},
// or with the object JSON-encoded into a string (either top level or under "data").
func DecodePayload(body []byte, v any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ErrEmptyPayload
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if body[0] == '{' && json.Unmarshal(body, &envelope) == nil {
		data := bytes.TrimSpace(envelope.Data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			body = data
		}
	}

	if body[0] == '"' {
		var encoded string
		if err := json.Unmarshal(body, &encoded); err != nil {
			return fmt.Errorf("invalid JSON string payload: %w", err)
		}
		body = bytes.TrimSpace([]byte(encoded))
		if len(body) == 0 {
			return ErrEmptyPayload
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}
	return nil
}
