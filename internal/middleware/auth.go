package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"seocontrol/internal/api/v1/respond"
	"seocontrol/internal/util"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const identityContextKey = contextKey("identity")

// ErrNoSession is returned when a request carries no credentials at all.
var ErrNoSession = errors.New("no session")

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Email  string
}

// IdentityResolver resolves the caller of a request.
type IdentityResolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

// JWTResolver reads a Supabase access token from the Authorization header or,
// failing that, from the session cookie.
type JWTResolver struct {
	keyMaterial string
	cookieName  string
}

// NewJWTResolver returns a resolver that verifies tokens with keyMaterial,
// an HMAC secret or a PEM public key.
func NewJWTResolver(keyMaterial, cookieName string) *JWTResolver {
	return &JWTResolver{keyMaterial: keyMaterial, cookieName: cookieName}
}

func (j *JWTResolver) Resolve(r *http.Request) (*Identity, error) {
	token := bearerToken(r)
	if token == "" {
		token = j.cookieToken(r)
	}
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := util.ValidateJWT(token, j.keyMaterial)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// cookieToken accepts a bare access token, or the session cookie written by
// the Supabase SSR helpers: an optionally chunked ("name.0", "name.1", ...)
// and optionally "base64-" prefixed JSON session.
func (j *JWTResolver) cookieToken(r *http.Request) string {
	if j.cookieName == "" {
		return ""
	}
	value := ""
	if c, err := r.Cookie(j.cookieName); err == nil {
		value = c.Value
	} else {
		value = joinChunks(r, j.cookieName)
	}
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "base64-") {
		raw := strings.TrimPrefix(value, "base64-")
		decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
		if err != nil {
			return ""
		}
		value = string(decoded)
	}

	if strings.HasPrefix(value, "{") {
		var session struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal([]byte(value), &session); err != nil {
			return ""
		}
		return session.AccessToken
	}
	return value
}

func joinChunks(r *http.Request, name string) string {
	type chunk struct {
		idx   int
		value string
	}
	var chunks []chunk
	for _, c := range r.Cookies() {
		suffix, ok := strings.CutPrefix(c.Name, name+".")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		chunks = append(chunks, chunk{idx: idx, value: c.Value})
	}
	sort.Slice(chunks, func(i, k int) bool { return chunks[i].idx < chunks[k].idx })

	var b strings.Builder
	for i, c := range chunks {
		if c.idx != i {
			return ""
		}
		b.WriteString(c.value)
	}
	return b.String()
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFrom returns the identity stored by RequireUser or OptionalUser.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	return id, ok && id != nil
}

// RequireUser rejects requests without a valid session with 401 before the
// wrapped handler runs.
func RequireUser(resolver IdentityResolver, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r)
			if err != nil {
				if !errors.Is(err, ErrNoSession) {
					logger.Debug().Err(err).Str("path", r.URL.Path).Msg("Invalid session")
				}
				respond.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalUser attaches the caller's identity when there is a valid session
// and passes every request through.
func OptionalUser(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := resolver.Resolve(r); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
