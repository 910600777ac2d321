package session

import (
	"fmt"
	"strconv"

	"github.com/propuestas-project/propctl/internal/domain"
)

// Save writes a full session into the store. It is called after login and
// registration.
func Save(store Store, s domain.Session) error {
	values := []struct{ key, value string }{
		{KeyAccessToken, s.AccessToken},
		{KeyRefreshToken, s.RefreshToken},
		{KeyUserType, string(s.UserType)},
		{KeyUserEmail, s.UserEmail},
		{KeyIsAdmin, strconv.FormatBool(s.IsAdmin)},
		{KeyFirstLogin, strconv.FormatBool(s.IsFirstLogin)},
	}
	for _, kv := range values {
		if err := store.Set(kv.key, kv.value); err != nil {
			return fmt.Errorf("saving %s: %w", kv.key, err)
		}
	}
	return nil
}

// Load reads the session back. It reports false when no access token is stored.
func Load(store Store) (domain.Session, bool) {
	access, ok := store.Get(KeyAccessToken)
	if !ok || access == "" {
		return domain.Session{}, false
	}

	s := domain.Session{AccessToken: access}
	s.RefreshToken, _ = store.Get(KeyRefreshToken)
	if v, found := store.Get(KeyUserType); found {
		s.UserType = domain.Role(v)
	}
	s.UserEmail, _ = store.Get(KeyUserEmail)
	if v, found := store.Get(KeyIsAdmin); found {
		s.IsAdmin, _ = strconv.ParseBool(v)
	}
	if v, found := store.Get(KeyFirstLogin); found {
		s.IsFirstLogin, _ = strconv.ParseBool(v)
	}
	return s, true
}

// RotateTokens overwrites whichever of the two tokens is non-empty
func RotateTokens(store Store, access, refresh string) error {
	if access != "" {
		if err := store.Set(KeyAccessToken, access); err != nil {
			return fmt.Errorf("saving access token: %w", err)
		}
	}
	if refresh != "" {
		if err := store.Set(KeyRefreshToken, refresh); err != nil {
			return fmt.Errorf("saving refresh token: %w", err)
		}
	}
	return nil
}

// Role returns the stored user type, or "" when absent
func Role(store Store) domain.Role {
	v, _ := store.Get(KeyUserType)
	return domain.Role(v)
}
