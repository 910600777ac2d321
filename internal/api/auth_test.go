package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/session"
)

const loginOK = `{
	"access": "access-new",
	"refresh": "refresh-new",
	"user_type": "profesor",
	"user_email": "prof@escuela.mx",
	"primer_inicio": true,
	"is_admin": false
}`

func TestLogin_StoresSession(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, loginOK)
	store := session.NewMemoryStore()
	c := newTestClient(fb, store)

	resp, err := c.Login(context.Background(), domain.Credentials{Email: "prof@escuela.mx", Password: "secreta"})
	require.NoError(t, err)

	assert.Equal(t, "access-new", resp.Access)
	assert.Equal(t, "/api/login/", fb.last().Path)
	assert.Empty(t, fb.last().Header.Get("Authorization"))
	assert.JSONEq(t, `{"email": "prof@escuela.mx", "password": "secreta"}`, string(fb.last().Body))

	sess, ok := session.Load(store)
	require.True(t, ok)
	assert.Equal(t, "access-new", sess.AccessToken)
	assert.Equal(t, "refresh-new", sess.RefreshToken)
	assert.Equal(t, domain.RoleProfessor, sess.UserType)
	assert.Equal(t, "prof@escuela.mx", sess.UserEmail)
	assert.True(t, sess.IsFirstLogin)
	assert.False(t, sess.IsAdmin)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "403 without message",
			status:      http.StatusForbidden,
			body:        `{}`,
			wantKind:    KindRemote,
			wantMessage: msgLoginForbidden,
		},
		{
			name:        "403 with backend message",
			status:      http.StatusForbidden,
			body:        `{"error": "Debes verificar tu correo"}`,
			wantKind:    KindRemote,
			wantMessage: "Debes verificar tu correo",
		},
		{
			name:        "401 is invalid credentials",
			status:      http.StatusUnauthorized,
			body:        `{"detail": "No active account found"}`,
			wantKind:    KindRemote,
			wantMessage: msgInvalidCredentials,
		},
		{
			name:        "400 errors object stays validation",
			status:      http.StatusBadRequest,
			body:        `{"errors": {"email": ["Introduzca un correo válido."]}}`,
			wantKind:    KindValidation,
			wantMessage: "email: Introduzca un correo válido.",
		},
		{
			name:        "500 without message",
			status:      http.StatusInternalServerError,
			body:        ``,
			wantKind:    KindUnexpected,
			wantMessage: msgLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, tt.status, tt.body)
			store := session.NewMemoryStore()
			c := newTestClient(fb, store)

			_, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.mx", Password: "x"})

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantMessage, apiErr.UserMessage())
			assert.Empty(t, store.Snapshot(), "a failed login stores nothing")
		})
	}
}

func TestLogin_NetworkFailureDiffersFromBadCredentials(t *testing.T) {
	c := NewClient("http://127.0.0.1:1/api", session.NewMemoryStore(), testLogger())

	_, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.mx", Password: "x"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnexpected, apiErr.Kind)
	assert.Equal(t, msgUnexpected, apiErr.UserMessage())
	assert.NotEqual(t, msgInvalidCredentials, apiErr.UserMessage())
}

func TestRegister_Payload(t *testing.T) {
	fb := newFakeBackend(t, http.StatusCreated, `{"message": "Usuario registrado. Revisa tu correo."}`)
	store := session.NewMemoryStore()
	c := newTestClient(fb, store)

	resp, err := c.Register(context.Background(), domain.RegistrationInput{
		Email:            "alumno@escuela.mx",
		Password:         "Secreta1!",
		ConfirmPassword:  "Secreta1!",
		Name:             "Ana",
		LastNamePaternal: "López",
		StudentID:        "2020630001",
		Career:           "ISC",
		StudyPlan:        "2020",
	})
	require.NoError(t, err)
	assert.Equal(t, "Usuario registrado. Revisa tu correo.", resp.Message)

	assert.Equal(t, "/api/register/", fb.last().Path)
	assert.JSONEq(t, `{
		"email": "alumno@escuela.mx",
		"password": "Secreta1!",
		"confirmPassword": "Secreta1!",
		"nombre": "Ana",
		"apellido_paterno": "López",
		"apellido_materno": "",
		"boleta": "2020630001",
		"carrera": "ISC",
		"plan_estudios": "2020",
		"areas_ids": [],
		"areas_custom": [],
		"user": {
			"email": "alumno@escuela.mx",
			"first_name": "Ana",
			"last_name": "López"
		}
	}`, string(fb.last().Body))

	assert.Empty(t, store.Snapshot(), "no tokens, nothing stored")
}

func TestRegister_WithTokensStoresSession(t *testing.T) {
	fb := newFakeBackend(t, http.StatusCreated, `{"access": "a", "refresh": "r", "user_type": "alumno"}`)
	store := session.NewMemoryStore()
	c := newTestClient(fb, store)

	_, err := c.Register(context.Background(), domain.RegistrationInput{Email: "x@y.mx"})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleStudent, session.Role(store))
}

func TestRegister_ValidationBodyVerbatim(t *testing.T) {
	body := `{"errors": {"boleta": ["Ya existe un alumno con esta boleta."], "email": "duplicado"}}`
	fb := newFakeBackend(t, http.StatusBadRequest, body)
	c := newTestClient(fb, session.NewMemoryStore())

	_, err := c.Register(context.Background(), domain.RegistrationInput{Email: "x@y.mx"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.JSONEq(t, body, string(apiErr.Body))
	assert.Equal(t, "Ya existe un alumno con esta boleta.", apiErr.FieldMessages()["boleta"])
}

func TestVerifyEmail(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantErr      bool
		wantVerified bool
		wantMessage  string
		wantError    string
	}{
		{
			name:         "verified",
			status:       http.StatusOK,
			body:         `{"message": "Correo verificado"}`,
			wantVerified: true,
			wantMessage:  "Correo verificado",
		},
		{
			name:      "invalid token reported in band",
			status:    http.StatusBadRequest,
			body:      `{"error": "Token inválido o expirado"}`,
			wantError: "Token inválido o expirado",
		},
		{
			name:      "non json error body",
			status:    http.StatusNotFound,
			body:      `Not Found`,
			wantError: "Not Found",
		},
		{
			name:    "error without body",
			status:  http.StatusInternalServerError,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, tt.status, tt.body)
			c := newTestClient(fb, session.NewMemoryStore())

			res, err := c.VerifyEmail(context.Background(), "abc123")
			assert.Equal(t, "/api/verify-email/abc123/", fb.last().Path)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindUnexpected))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.wantVerified, res.Verified)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Equal(t, tt.wantError, res.Error)
		})
	}
}

func TestChangePassword_RotatesTokens(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"access": "access-2", "refresh": "refresh-2", "message": "ok"}`)
	store := loggedInStore()
	c := newTestClient(fb, store)

	_, err := c.ChangePassword(context.Background(), domain.PasswordChange{
		CurrentPassword: "vieja",
		NewPassword:     "nueva",
		ConfirmPassword: "nueva",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/usuarios/cambiar-contrasena/", fb.last().Path)
	assert.Equal(t, "Bearer access-1", fb.last().Header.Get("Authorization"))
	assert.JSONEq(t, `{"currentPassword": "vieja", "newPassword": "nueva", "confirmPassword": "nueva"}`,
		string(fb.last().Body))

	fb.respond(http.StatusOK, `[]`)
	_, err = c.ListProposals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-2", fb.last().Header.Get("Authorization"))

	refresh, _ := store.Get(session.KeyRefreshToken)
	assert.Equal(t, "refresh-2", refresh)
}

func TestChangeProfessorPassword_KeepsTokensWhenAbsent(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"message": "Contraseña actualizada"}`)
	store := loggedInStore()
	c := newTestClient(fb, store)

	resp, err := c.ChangeProfessorPassword(context.Background(), domain.PasswordPair{Password: "n", ConfirmPassword: "n"})
	require.NoError(t, err)
	assert.Equal(t, "Contraseña actualizada", resp.Message)
	assert.Equal(t, "/api/cambiar-contrasena-profesor/", fb.last().Path)

	access, _ := store.Get(session.KeyAccessToken)
	assert.Equal(t, "access-1", access)
}

func TestResetPassword(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"access": "fresh", "refresh": "fresh-r"}`)
	store := session.NewMemoryStore()
	c := newTestClient(fb, store)

	_, err := c.ResetPassword(context.Background(), "tok/en", domain.PasswordPair{Password: "p", ConfirmPassword: "p"})
	require.NoError(t, err)

	assert.Equal(t, "/api/usuarios/reset-password/tok/en/", fb.last().Path)
	assert.Empty(t, fb.last().Header.Get("Authorization"))
	access, _ := store.Get(session.KeyAccessToken)
	assert.Equal(t, "fresh", access)
}

func TestRequestPasswordReset(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"message": "Correo enviado"}`)
	c := newTestClient(fb, session.NewMemoryStore())

	resp, err := c.RequestPasswordReset(context.Background(), "a@b.mx")
	require.NoError(t, err)

	assert.Equal(t, "Correo enviado", resp.Message)
	assert.Equal(t, "/api/usuarios/reset-password-request/", fb.last().Path)
	assert.JSONEq(t, `{"email": "a@b.mx"}`, string(fb.last().Body))
}

func TestAuthenticatedCall_ExpiredSession(t *testing.T) {
	fb := newFakeBackend(t, http.StatusUnauthorized, `{"detail": "Token is invalid or expired"}`)
	c := newTestClient(fb, loggedInStore())

	_, err := c.ListOwnProposals(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindRemote, apiErr.Kind)
	assert.Equal(t, msgSessionExpired, apiErr.UserMessage())
	assert.Len(t, fb.calls(), 1, "no refresh is attempted")
}
