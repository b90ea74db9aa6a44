package jwtx_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/todohub/pkg/jwtx"
)

const (
	exampleIssuer   = "https://idp.example.com/"
	exampleAudience = "https://todohub.example.com/api"
)

func genKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv
}

func signToken(t *testing.T, priv *rsa.PrivateKey, kid string, claims *jwtx.Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(priv)
	require.NoError(t, err)
	return s
}

func baseClaims(ttl time.Duration) *jwtx.Claims {
	now := time.Now().UTC()
	return &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    exampleIssuer,
			Subject:   "idp|abc123",
			Audience:  jwt.ClaimStrings{exampleAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Permissions: []string{"read:todo", "write:todo"},
	}
}

func keySetFor(t *testing.T, kid string, priv *rsa.PrivateKey) *jwtx.KeySet {
	t.Helper()
	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddJWK(jwtx.NewRSAJWK(kid, "sig", "RS256", &priv.PublicKey)))
	return ks
}

func TestRS256Verify(t *testing.T) {
	priv := genKey(t)
	keys := keySetFor(t, "k1", priv)
	verifier := jwtx.NewVerifierRS256(keys, exampleIssuer, []string{exampleAudience})

	token := signToken(t, priv, "k1", baseClaims(2*time.Minute))

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "idp|abc123", claims.Subject)
	require.Equal(t, []string{"read:todo", "write:todo"}, claims.Permissions)
	require.False(t, claims.IsMachine())
}

func TestRS256VerifyMachineToken(t *testing.T) {
	priv := genKey(t)
	keys := keySetFor(t, "k1", priv)
	verifier := jwtx.NewVerifierRS256(keys, exampleIssuer, []string{exampleAudience})

	claims := baseClaims(2 * time.Minute)
	claims.GrantType = jwtx.GrantTypeClientCredentials
	claims.Permissions = []string{"worker"}

	parsed, err := verifier.Verify(signToken(t, priv, "k1", claims))
	require.NoError(t, err)
	require.True(t, parsed.IsMachine())
	require.Equal(t, []string{"worker"}, parsed.Permissions)
}

func TestRS256VerifyFailsForWrongIssuer(t *testing.T) {
	priv := genKey(t)
	keys := keySetFor(t, "k1", priv)
	verifier := jwtx.NewVerifierRS256(keys, "https://other.example.com/", []string{exampleAudience})

	_, err := verifier.Verify(signToken(t, priv, "k1", baseClaims(time.Minute)))
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestRS256VerifyFailsForWrongAudience(t *testing.T) {
	priv := genKey(t)
	keys := keySetFor(t, "k1", priv)
	verifier := jwtx.NewVerifierRS256(keys, exampleIssuer, []string{"https://elsewhere.example.com/"})

	_, err := verifier.Verify(signToken(t, priv, "k1", baseClaims(time.Minute)))
	require.ErrorIs(t, err, jwtx.ErrAudience)
}

func TestRS256VerifyFailsForExpiredToken(t *testing.T) {
	priv := genKey(t)
	keys := keySetFor(t, "k1", priv)
	verifier := jwtx.NewVerifierRS256(keys, exampleIssuer, []string{exampleAudience})

	_, err := verifier.Verify(signToken(t, priv, "k1", baseClaims(-time.Minute)))
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestRS256VerifyFailsForUnknownKey(t *testing.T) {
	signing := genKey(t)
	other := genKey(t)

	// Keyset only knows the other key
	keys := keySetFor(t, "k2", other)
	verifier := jwtx.NewVerifierRS256(keys, exampleIssuer, []string{exampleAudience})

	_, err := verifier.Verify(signToken(t, signing, "k1", baseClaims(time.Minute)))
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
}

func TestRS256VerifyFailsForGarbage(t *testing.T) {
	keys := keySetFor(t, "k1", genKey(t))
	verifier := jwtx.NewVerifierRS256(keys, exampleIssuer, nil)

	_, err := verifier.Verify("not.a.token")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestKeySetResetFromJWKS(t *testing.T) {
	oldKey := genKey(t)
	newKey := genKey(t)

	keys := keySetFor(t, "old", oldKey)
	require.True(t, keys.IsReady())

	err := keys.ResetFromJWKS(jwtx.JWKS{
		Keys: []jwtx.JWK{jwtx.NewRSAJWK("new", "sig", "RS256", &newKey.PublicKey)},
	})
	require.NoError(t, err)

	_, err = keys.Get("old")
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)

	_, err = keys.Get("new")
	require.NoError(t, err)
}

func TestRemoteKeySourceRefresh(t *testing.T) {
	priv := genKey(t)
	jwks := jwtx.JWKS{
		Keys: []jwtx.JWK{jwtx.NewRSAJWK("remote-key", "sig", "RS256", &priv.PublicKey)},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/.well-known/jwks.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(jwks))
	}))
	defer srv.Close()

	keys := jwtx.NewKeySet()
	src := jwtx.NewRemoteKeySource(srv.URL)
	require.NoError(t, src.Refresh(t.Context(), keys))
	require.True(t, keys.IsReady())

	_, err := keys.Get("remote-key")
	require.NoError(t, err)
}

func TestRemoteKeySourceRejectsEmptySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keys":[]}`))
	}))
	defer srv.Close()

	src := jwtx.NewRemoteKeySource(srv.URL)
	_, err := src.Fetch(t.Context())
	require.Error(t, err)
}
