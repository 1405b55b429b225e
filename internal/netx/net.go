// Package netx holds HTTP helpers for talking JSON to the editing backend.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// maxErrorBody caps how much of a failed response is read for the message.
const maxErrorBody = 64 << 10

// errorEnvelope is the backend's failure body: {"error": "..."}.
type errorEnvelope struct {
	Error string `json:"error"`
}

// NewJSONRequest builds a request with body marshalled as JSON. A nil body
// produces a request without a payload (used for GET).
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// ErrorMessage extracts the "error" field of a failed response body. When
// the body is not JSON or the field is missing, it returns
// "<prefix> with status <code>".
func ErrorMessage(resp *http.Response, prefix string) string {
	fallback := fmt.Sprintf("%s with status %d", prefix, resp.StatusCode)
	if resp.Body == nil {
		return fallback
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fallback
	}
	var env errorEnvelope
	if err := json.Unmarshal(b, &env); err != nil || env.Error == "" {
		return fallback
	}
	return env.Error
}

// DecodeJSON decodes a successful response body into v.
func DecodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsConnError reports whether err means the server could not be reached
// (dial failure, reset, DNS), as opposed to a bad response.
func IsConnError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
