package util

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwkFor(t *testing.T, key *ecdsa.PrivateKey) JWK {
	t.Helper()
	enc := func(b []byte) string {
		padded := make([]byte, 32)
		copy(padded[32-len(b):], b)
		return base64.RawURLEncoding.EncodeToString(padded)
	}
	return JWK{
		Kty: "EC",
		Crv: "P-256",
		Alg: "ES256",
		Use: "sig",
		X:   enc(key.X.Bytes()),
		Y:   enc(key.Y.Bytes()),
	}
}

func TestJWKToPEM_VerifiesTokens(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pemKey, err := JWKToPEM(jwkFor(t, key))
	require.NoError(t, err)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodES256, validClaims("user-3")).SignedString(key)
	require.NoError(t, err)

	claims, err := ValidateJWT(tok, pemKey)
	require.NoError(t, err)
	assert.Equal(t, "user-3", claims.Subject)
}

func TestJWKToPEM_RejectsOtherKeyTypes(t *testing.T) {
	_, err := JWKToPEM(JWK{Kty: "RSA", Alg: "RS256"})
	assert.Error(t, err)

	_, err = JWKToPEM(JWK{Kty: "EC", Alg: "ES256", X: "!!", Y: "AA"})
	assert.Error(t, err)
}

func TestFetchSigningKeyPEM(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, JWKSPath, r.URL.Path)
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JWK{{Kty: "oct", Alg: "HS256"}, jwkFor(t, key)}})
	}))
	defer srv.Close()

	pemKey, err := FetchSigningKeyPEM(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)

	parsed, err := ParseECDSAPublicKey(pemKey)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(&key.PublicKey))
}

func TestFetchSigningKeyPEM_NoKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"keys":[]}`))
	}))
	defer srv.Close()

	_, err := FetchSigningKeyPEM(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
}
