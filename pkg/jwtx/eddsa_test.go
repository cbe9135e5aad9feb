package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/clienthub/pkg/cryptox"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newSigner(t, "idp-key-1")
	require.Equal(t, "EdDSA", signer.Alg())

	claims := jwtx.NewSessionClaims(
		"user-456", "sarah@acme.com", "Sarah Connor", "client",
		5*time.Minute, exampleIssuer, []string{"portal"}, time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	jwks := keys.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)

	parsed, err := jwtx.NewVerifierEdDSA(keys, exampleIssuer, []string{"portal"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-456", parsed.Subject)
	require.Equal(t, "sarah@acme.com", parsed.Email)
	require.Equal(t, "Sarah Connor", parsed.Name)
	require.Equal(t, "client", parsed.Role)
	require.NotEmpty(t, parsed.ID)
}

func TestEdDSAVerifyFailures(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	now := time.Now().UTC()
	sign := func(c jwtx.Claims) string {
		tok, err := signer.Sign(c)
		require.NoError(t, err)
		return tok
	}

	t.Run("wrong issuer", func(t *testing.T) {
		tok := sign(jwtx.NewSessionClaims("u", "a@b.com", "", "staff", time.Minute, exampleIssuer, nil, now))
		_, err := jwtx.NewVerifierEdDSA(keys, "wrong-issuer", nil).Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		tok := sign(jwtx.NewSessionClaims("u", "a@b.com", "", "staff", time.Minute, exampleIssuer, nil, now.Add(-time.Hour)))
		_, err := jwtx.NewVerifierEdDSA(keys, exampleIssuer, nil).Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("missing identity claims", func(t *testing.T) {
		tok := sign(jwtx.NewSessionClaims("u", "", "", "staff", time.Minute, exampleIssuer, nil, now))
		_, err := jwtx.NewVerifierEdDSA(keys, exampleIssuer, nil).Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("unknown key", func(t *testing.T) {
		other := newSigner(t, "k2")
		tok, err := other.Sign(jwtx.NewSessionClaims("u", "a@b.com", "", "staff", time.Minute, exampleIssuer, nil, now))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keys, exampleIssuer, nil).Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
		require.ErrorIs(t, err, jwtx.ErrNoKey)
	})

	t.Run("HS256 token rejected", func(t *testing.T) {
		hs := jwt.NewWithClaims(jwt.SigningMethodHS256,
			jwtx.NewSessionClaims("u", "a@b.com", "", "staff", time.Minute, exampleIssuer, nil, now))
		hs.Header["kid"] = "k1"
		tok, err := hs.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		_, err = jwtx.NewVerifierEdDSA(keys, exampleIssuer, nil).Verify(tok)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwtx.NewVerifierEdDSA(keys, exampleIssuer, nil).Verify("not.a.jwt")
		require.Error(t, err)
	})
}
