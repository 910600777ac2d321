package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	r := &request{op: "create proposal", fallback: msgCreateProposal}

	tests := []struct {
		name          string
		status        int
		body          string
		authenticated bool
		wantKind      Kind
		wantMessage   string
	}{
		{
			name:        "errors object becomes validation",
			status:      http.StatusBadRequest,
			body:        `{"errors": {"nombre": ["Este campo es requerido."]}}`,
			wantKind:    KindValidation,
			wantMessage: "nombre: Este campo es requerido.",
		},
		{
			name:        "error string becomes remote",
			status:      http.StatusBadRequest,
			body:        `{"error": "La propuesta ya existe"}`,
			wantKind:    KindRemote,
			wantMessage: "La propuesta ya existe",
		},
		{
			name:        "message key",
			status:      http.StatusConflict,
			body:        `{"message": "Conflicto"}`,
			wantKind:    KindRemote,
			wantMessage: "Conflicto",
		},
		{
			name:        "detail key",
			status:      http.StatusNotFound,
			body:        `{"detail": "No encontrado."}`,
			wantKind:    KindRemote,
			wantMessage: "No encontrado.",
		},
		{
			name:        "error takes precedence over detail",
			status:      http.StatusBadRequest,
			body:        `{"detail": "d", "error": "e"}`,
			wantKind:    KindRemote,
			wantMessage: "e",
		},
		{
			name:        "no message uses fallback",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			wantKind:    KindUnexpected,
			wantMessage: msgCreateProposal,
		},
		{
			name:        "non json body uses fallback",
			status:      http.StatusBadGateway,
			body:        `<html>Bad gateway</html>`,
			wantKind:    KindUnexpected,
			wantMessage: msgCreateProposal,
		},
		{
			name:          "authenticated 401 means session expired",
			status:        http.StatusUnauthorized,
			body:          `{"detail": "Given token not valid for any token type"}`,
			authenticated: true,
			wantKind:      KindRemote,
			wantMessage:   msgSessionExpired,
		},
		{
			name:          "authenticated 401 without body",
			status:        http.StatusUnauthorized,
			authenticated: true,
			wantKind:      KindRemote,
			wantMessage:   msgSessionExpired,
		},
		{
			name:        "anonymous 401 keeps backend message",
			status:      http.StatusUnauthorized,
			body:        `{"error": "Credenciales"}`,
			wantKind:    KindRemote,
			wantMessage: "Credenciales",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := normalize(r, tt.status, []byte(tt.body), tt.authenticated)

			assert.Equal(t, tt.wantKind, e.Kind)
			assert.Equal(t, tt.wantMessage, e.UserMessage())
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, "create proposal", e.Op)
			if tt.body != "" {
				assert.Equal(t, tt.body, string(e.Body))
			}
		})
	}
}

func TestNormalize_FallbackFn(t *testing.T) {
	r := &request{
		op: "delete",
		fallbackFn: func(status int) string {
			return http.StatusText(status)
		},
	}

	e := normalize(r, http.StatusNotFound, nil, true)

	assert.Equal(t, KindUnexpected, e.Kind)
	assert.Equal(t, "Not Found", e.Message)
	assert.Nil(t, e.Body)
}

func TestError_FieldMessages(t *testing.T) {
	e := &Error{
		Kind: KindValidation,
		Fields: map[string]any{
			"email":    []any{"Correo inválido.", "Ya registrado."},
			"password": "Muy corta",
			"user":     map[string]any{"email": "x"},
			"count":    float64(3),
		},
	}

	msgs := e.FieldMessages()
	assert.Equal(t, "Correo inválido. Ya registrado.", msgs["email"])
	assert.Equal(t, "Muy corta", msgs["password"])
	assert.JSONEq(t, `{"email": "x"}`, msgs["user"])
	assert.Equal(t, "3", msgs["count"])

	assert.Equal(t,
		`count: 3; email: Correo inválido. Ya registrado.; password: Muy corta; user: {"email":"x"}`,
		e.UserMessage())
}

func TestError_ErrorString(t *testing.T) {
	e := newAuthError("list proposals")
	assert.Equal(t, "list proposals: "+msgMissingToken, e.Error())
	assert.ErrorIs(t, e, ErrMissingToken)

	bare := &Error{Kind: KindRemote, Message: "x"}
	assert.Equal(t, "x", bare.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(nil))
	assert.Equal(t, Kind(0), KindOf(assert.AnError))
	assert.Equal(t, KindValidation, KindOf(newInvalidIDError("x")))

	require.True(t, IsKind(newTransportError("x", assert.AnError), KindUnexpected))
	assert.Equal(t, "unexpected", KindUnexpected.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
