package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header is the header used both for outbound calls and inbound requests.
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validIDRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// New generates a fresh request id.
func New() string {
	return uuid.NewString()
}

// Valid reports whether id is safe to propagate.
func Valid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}

// Middleware attaches a request id to every inbound request, reusing a valid
// client-supplied X-Request-ID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !Valid(requestID) {
			requestID = New()
		}
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}
