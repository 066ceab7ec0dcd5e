package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a group attribute from the given attrs.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under the "errors" key.
// Returns an empty attribute when every error is nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error returns an "error" attribute, or an empty attribute for a nil error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Method(method string) slog.Attr {
	return slog.String("method", method)
}

func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Status is the HTTP status code of a response.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Attempt is the 1-based attempt number of an outbound call.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Reason describes why a session changed.
func Reason(reason any) slog.Attr {
	return slog.Any("reason", reason)
}

// Decision is the outcome of a route guard evaluation.
func Decision(decision any) slog.Attr {
	return slog.Any("decision", decision)
}

func Queued(n int) slog.Attr {
	return slog.Int("queued", n)
}
