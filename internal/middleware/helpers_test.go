package middleware

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"seocontrol/internal/model"
	"seocontrol/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "super-secret-jwt-token-with-at-least-32-characters"
	testCookie = "sb-access-token"
)

var nopLogger = zerolog.New(io.Discard)

func signToken(t *testing.T, sub string) string {
	t.Helper()
	claims := util.Claims{
		Email: sub + "@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

// spyHandler counts how often the protected handler runs.
type spyHandler struct {
	calls    int
	identity *Identity
}

func (s *spyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.calls++
	s.identity, _ = IdentityFrom(r.Context())
	w.WriteHeader(http.StatusOK)
}

type fakeRoles struct {
	roles map[string]model.Role
	err   error
	calls int
}

func (f *fakeRoles) RoleOf(_ context.Context, userID string) (model.Role, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", errProfileMissing
	}
	return role, nil
}

type sentinel string

func (s sentinel) Error() string { return string(s) }

const errProfileMissing = sentinel("profile not found")
