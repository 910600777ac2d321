package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies every failure the API layer can produce
type Kind int

const (
	// KindAuth means no access token was stored; no request was sent
	KindAuth Kind = iota + 1
	// KindValidation carries structured per-field errors
	KindValidation
	// KindRemote carries a single message from the backend
	KindRemote
	// KindUnexpected means there was no usable backend response
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// ErrMissingToken is wrapped by every KindAuth error
var ErrMissingToken = errors.New("missing token")

// Error is the normalized failure returned by every Client method
type Error struct {
	Kind Kind
	// Op names the client operation, e.g. "login"
	Op string
	// Status is the HTTP status, 0 when no response was received
	Status int
	// Message is the human-readable description
	Message string
	// Fields holds the decoded "errors" object for KindValidation
	Fields map[string]any
	// Body is the raw response body, byte for byte
	Body json.RawMessage
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.UserMessage()
	}
	return e.Op + ": " + e.UserMessage()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the text suitable for showing to the user
func (e *Error) UserMessage() string {
	if e.Kind == KindValidation && e.Message == "" {
		msgs := e.FieldMessages()
		keys := make([]string, 0, len(msgs))
		for k := range msgs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+msgs[k])
		}
		return strings.Join(parts, "; ")
	}
	return e.Message
}

// FieldMessages flattens Fields into one string per field. Backends send
// either a string or a list of strings per field.
func (e *Error) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for field, v := range e.Fields {
		out[field] = flattenMessage(v)
	}
	return out
}

func flattenMessage(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case []any:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			parts = append(parts, flattenMessage(item))
		}
		return strings.Join(parts, " ")
	case map[string]any:
		b, _ := json.Marshal(m)
		return string(b)
	case nil:
		return ""
	default:
		return fmt.Sprint(m)
	}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func newAuthError(op string) *Error {
	return &Error{
		Kind:    KindAuth,
		Op:      op,
		Message: msgMissingToken,
		Err:     ErrMissingToken,
	}
}

func newInvalidIDError(op string) *Error {
	return &Error{
		Kind:    KindValidation,
		Op:      op,
		Message: msgMissingID,
		Fields:  map[string]any{"id": msgMissingID},
	}
}

func newTransportError(op string, err error) *Error {
	return &Error{
		Kind:    KindUnexpected,
		Op:      op,
		Message: msgUnexpected,
		Err:     err,
	}
}

// normalize turns a non-2xx response into an *Error. The precedence is
// errors object, then session expiry for an authenticated 401, then a
// single message string, then the caller's fallback.
func normalize(r *request, status int, body []byte, authenticated bool) *Error {
	e := &Error{
		Op:     r.op,
		Status: status,
		Err:    fmt.Errorf("HTTP %d %s", status, http.StatusText(status)),
	}
	if len(body) > 0 {
		e.Body = json.RawMessage(bytes.Clone(body))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if raw, ok := envelope["errors"]; ok {
			var fields map[string]any
			if err := json.Unmarshal(raw, &fields); err == nil && fields != nil {
				e.Kind = KindValidation
				e.Fields = fields
				return e
			}
		}

		if authenticated && status == http.StatusUnauthorized {
			e.Kind = KindRemote
			e.Message = msgSessionExpired
			return e
		}

		for _, key := range []string{"error", "message", "detail"} {
			var msg string
			if raw, ok := envelope[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
				e.Kind = KindRemote
				e.Message = msg
				return e
			}
		}
	}

	if authenticated && status == http.StatusUnauthorized {
		e.Kind = KindRemote
		e.Message = msgSessionExpired
		return e
	}

	e.Kind = KindUnexpected
	e.Message = r.fallbackMessage(status)
	return e
}
