package auth

import (
	"errors"

	"github.com/dmitrymomot/authclient/pkg/validator"
)

// Kind classifies a lifecycle failure.
type Kind int

const (
	// KindRejected: the server refused the credentials or the request.
	KindRejected Kind = iota + 1
	// KindValidation: one or more fields are invalid; see Failure.Fields.
	KindValidation
	// KindTransport: the server could not be reached.
	KindTransport
	// KindSessionExpired: the session could not be recovered.
	KindSessionExpired
	// KindUnexpected: the server answered with something we cannot use.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindSessionExpired:
		return "session_expired"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Failure is returned by Manager operations. Message is suitable for display.
type Failure struct {
	Kind    Kind
	Message string
	Fields  validator.ValidationErrors
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Kind.String() + ": " + f.Message + ": " + f.Err.Error()
	}
	return f.Kind.String() + ": " + f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure returns the Failure inside err, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err is a Failure of kind k.
func IsKind(err error, k Kind) bool {
	f, ok := AsFailure(err)
	return ok && f.Kind == k
}
