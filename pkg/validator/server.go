package validator

import (
	"encoding/json"
	"sort"
)

var reservedKeys = []string{"errors", "status", "code"}

// FromServer decodes per-field errors from an API error body. Accepted shapes:
//
//	{"errors": {"email": "already taken"}}
//	{"errors": {"email": ["already taken", "..."]}}
//	{"email": ["already taken"]}
//
// Only string or string-array values count; fields are sorted by name. The
// top-level form is only read when the body has no "error" or "message" key,
// so a generic error body such as {"timestamp", "status", "error", "path"}
// never becomes field errors. Returns nil when the body carries no field
// errors.
func FromServer(body []byte) ValidationErrors {
	var envelope struct {
		Errors map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	fields := envelope.Errors
	if len(fields) == 0 {
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil
		}
		if _, ok := fields["error"]; ok {
			return nil
		}
		if _, ok := fields["message"]; ok {
			return nil
		}
		for _, key := range reservedKeys {
			delete(fields, key)
		}
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs ValidationErrors
	for _, name := range names {
		raw := fields[name]
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil {
			if msg != "" {
				errs.Add(name, msg)
			}
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			for _, m := range list {
				if m != "" {
					errs.Add(name, m)
				}
			}
		}
	}
	return errs
}
