package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/session"
)

// nestedUser is the user envelope the backend expects inside registration
// and admin profile payloads
type nestedUser struct {
	ID        int64 `json:"id,omitempty"`
	Email     any   `json:"email"`
	FirstName any   `json:"first_name"`
	LastName  any   `json:"last_name"`
}

type registrationPayload struct {
	domain.RegistrationInput
	User nestedUser `json:"user"`
}

// Register creates a new student account. The flat form fields are sent
// alongside a nested user envelope; a missing second surname is sent as "".
// When the backend answers with tokens the session is stored.
//
// Errors: KindValidation, KindRemote, KindUnexpected.
func (c *Client) Register(ctx context.Context, in domain.RegistrationInput) (*domain.AuthResponse, error) {
	if in.AreaIDs == nil {
		in.AreaIDs = []int64{}
	}
	if in.CustomAreas == nil {
		in.CustomAreas = []string{}
	}

	payload := registrationPayload{
		RegistrationInput: in,
		User: nestedUser{
			Email:     in.Email,
			FirstName: in.Name,
			LastName:  in.LastNamePaternal,
		},
	}

	resp, err := call[domain.AuthResponse](ctx, c, &request{
		op:       "register",
		method:   http.MethodPost,
		path:     "/register/",
		body:     payload,
		fallback: msgRegisterFailed,
	})
	if err != nil {
		return nil, err
	}
	if err := c.persistSession("register", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session and stores it. A 403 (email not
// verified or account disabled) and a 401 (bad credentials) produce
// distinct messages; other statuses use the backend's message.
//
// Errors: KindValidation, KindRemote, KindUnexpected.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	resp, err := call[domain.AuthResponse](ctx, c, &request{
		op:       "login",
		method:   http.MethodPost,
		path:     "/login/",
		body:     creds,
		fallback: msgLoginFailed,
	})
	if err != nil {
		return nil, loginError(err)
	}
	if err := c.persistSession("login", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func loginError(err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status == 0 {
		return err
	}

	switch apiErr.Status {
	case http.StatusForbidden:
		if apiErr.Kind != KindRemote {
			apiErr.Message = msgLoginForbidden
		}
		apiErr.Kind = KindRemote
	case http.StatusUnauthorized:
		apiErr.Kind = KindRemote
		apiErr.Message = msgInvalidCredentials
	}
	return apiErr
}

func (c *Client) persistSession(op string, resp *domain.AuthResponse) error {
	if !resp.HasTokens() {
		return nil
	}
	if err := session.Save(c.store, resp.Session()); err != nil {
		return &Error{Kind: KindUnexpected, Op: op, Message: msgUnexpected, Err: err}
	}
	return nil
}

// VerifyEmail confirms an email address. The endpoint reports its outcome
// in-band, so an error status that carries a body is returned as a normal
// result with StatusCode set.
//
// Errors: KindUnexpected (no response, or an error status without a body).
func (c *Client) VerifyEmail(ctx context.Context, token string) (*domain.VerificationResult, error) {
	r := &request{
		op:       "verify email",
		method:   http.MethodGet,
		path:     "/verify-email/" + url.PathEscape(token) + "/",
		fallback: msgVerifyFailed,
	}

	resp, err := c.send(ctx, r)
	if err != nil && (resp == nil || len(resp.body) == 0) {
		return nil, err
	}

	result := &domain.VerificationResult{StatusCode: resp.status}
	if decodeErr := resp.decode(r.op, result); decodeErr != nil {
		if err != nil {
			// non-JSON error body: keep the text as the message
			result.Error = string(resp.body)
			return result, nil
		}
		return nil, decodeErr
	}
	if err == nil && result.Error == "" {
		result.Verified = true
	}
	return result, nil
}

// RequestPasswordReset asks the backend to email a reset link.
//
// Errors: KindValidation, KindRemote, KindUnexpected.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*domain.AuthResponse, error) {
	resp, err := call[domain.AuthResponse](ctx, c, &request{
		op:       "reset password request",
		method:   http.MethodPost,
		path:     "/usuarios/reset-password-request/",
		body:     map[string]string{"email": email},
		fallback: msgResetRequest,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword sets a new password using the emailed reset token. Tokens
// in the response replace the stored ones.
//
// Errors: KindValidation, KindRemote, KindUnexpected.
func (c *Client) ResetPassword(ctx context.Context, token string, passwords domain.PasswordPair) (*domain.AuthResponse, error) {
	return c.passwordCall(ctx, &request{
		op:       "reset password",
		method:   http.MethodPost,
		path:     "/usuarios/reset-password/" + url.PathEscape(token) + "/",
		body:     passwords,
		fallback: msgResetPassword,
	})
}

// ChangePassword changes the current user's password and rotates tokens.
//
// Errors: KindAuth, KindValidation, KindRemote, KindUnexpected.
func (c *Client) ChangePassword(ctx context.Context, change domain.PasswordChange) (*domain.AuthResponse, error) {
	return c.passwordCall(ctx, &request{
		op:       "change password",
		method:   http.MethodPost,
		path:     "/usuarios/cambiar-contrasena/",
		body:     change,
		auth:     authRequired,
		fallback: msgChangePassword,
	})
}

// ChangeProfessorPassword sets the password of a professor on first login
// and rotates tokens.
//
// Errors: KindAuth, KindValidation, KindRemote, KindUnexpected.
func (c *Client) ChangeProfessorPassword(ctx context.Context, passwords domain.PasswordPair) (*domain.AuthResponse, error) {
	return c.passwordCall(ctx, &request{
		op:       "change professor password",
		method:   http.MethodPost,
		path:     "/cambiar-contrasena-profesor/",
		body:     passwords,
		auth:     authRequired,
		fallback: msgChangePassword,
	})
}

func (c *Client) passwordCall(ctx context.Context, r *request) (*domain.AuthResponse, error) {
	resp, err := call[domain.AuthResponse](ctx, c, r)
	if err != nil {
		return nil, err
	}
	if err := c.rotateTokens(r.op, resp.Access, resp.Refresh); err != nil {
		return nil, err
	}
	return &resp, nil
}
