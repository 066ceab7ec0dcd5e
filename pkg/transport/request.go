package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Request describes one outbound call.
type Request struct {
	Method string
	// Path is resolved against the base URL; absolute http(s) URLs are used as is.
	Path  string
	Query url.Values
	// Body is JSON-encoded unless it is []byte or json.RawMessage.
	Body   any
	Header http.Header

	// OmitCredentials sends the call without the cookie jar.
	OmitCredentials bool
	// NoRefresh keeps the call out of the refresh-and-retry path.
	NoRefresh bool
}

// Response is the result of a call that produced an HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Err returns nil for 2xx responses and a *StatusError otherwise.
func (r Response) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{Status: r.Status, Message: ErrorMessage(r.Body), Body: r.Body}
}

// Decode unmarshals a JSON body into v. Empty bodies leave v untouched.
func (r Response) Decode(v any) error {
	if len(r.Body) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// ErrorMessage extracts the server's error text from a JSON body shaped like
// {"error": "..."} or {"message": "..."}. Returns "" when neither is present.
func ErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Error) > 0 {
		var s string
		if err := json.Unmarshal(payload.Error, &s); err == nil {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return payload.Message
}

// Transport sends a Request and returns its Response.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// Func adapts a function to Transport.
type Func func(ctx context.Context, req Request) (Response, error)

func (f Func) Do(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}
