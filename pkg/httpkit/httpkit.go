// Package httpkit holds the JSON-over-HTTP plumbing shared by the API clients
package httpkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Header constants
const (
	contentTypeHeader = "Content-Type"
	acceptHeader      = "Accept"
	jsonContentType   = "application/json"
)

// maxErrorBody caps how much of a failed response body is kept for the error
const maxErrorBody = 512

// ErrUnexpectedStatus is wrapped by StatusError
var ErrUnexpectedStatus = errors.New("unexpected status code")

// StatusError reports a non-2xx response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrUnexpectedStatus, e.Code)
	}
	return fmt.Sprintf("%s: %d: %s", ErrUnexpectedStatus, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// NewJSONRequest builds a request with body encoded as JSON.
// A nil body sends no payload.
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(acceptHeader, jsonContentType)
	if body != nil {
		req.Header.Set(contentTypeHeader, jsonContentType)
	}
	return req, nil
}

// DoJSON sends req and decodes a 2xx JSON response into out
func DoJSON(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
