package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrymomot/authclient/pkg/session"
)

type wireUser struct {
	ID          json.RawMessage `json:"id"`
	Role        string          `json:"role"`
	DisplayName string          `json:"displayName"`
	Name        string          `json:"name"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
}

// ParseUser reads a user from a response body shaped either {"user": {...}}
// or as the user object itself. ok is false when the body names no user.
func ParseUser(body []byte) (user session.Authenticated, ok bool, err error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return session.Authenticated{}, false, nil
	}

	var envelope struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return session.Authenticated{}, false, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	raw := body
	if len(envelope.User) > 0 && !bytes.Equal(envelope.User, []byte("null")) {
		raw = envelope.User
	}

	var w wireUser
	if err := json.Unmarshal(raw, &w); err != nil {
		return session.Authenticated{}, false, fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}

	id, err := parseID(w.ID)
	if err != nil {
		return session.Authenticated{}, false, err
	}
	if id == "" {
		return session.Authenticated{}, false, nil
	}

	return session.Authenticated{
		UserID:      id,
		Role:        session.NormalizeRole(w.Role),
		DisplayName: firstNonEmpty(w.DisplayName, w.Name, w.Username, w.Email),
	}, true, nil
}

// parseID accepts a JSON string or number.
func parseID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("%w: id must be a string or number", ErrInvalidUser)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
