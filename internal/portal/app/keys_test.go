package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/clienthub/pkg/cryptox"
	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
	"github.com/aussiebroadwan/clienthub/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func testJWKS(t *testing.T) []byte {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("idp-1", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	raw, err := json.Marshal(keys.PublicJWKS())
	require.NoError(t, err)
	return raw
}

func TestInitIdentityKeysStatic(t *testing.T) {
	raw := testJWKS(t)

	keys, remote, err := InitIdentityKeys(t.Context(), Config{JWKS: string(raw)}, slogx.Discard())
	require.NoError(t, err)
	require.Nil(t, remote)
	require.True(t, keys.IsReady())

	path := filepath.Join(t.TempDir(), "jwks.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	keys, remote, err = InitIdentityKeys(t.Context(), Config{JWKSFile: path}, slogx.Discard())
	require.NoError(t, err)
	require.Nil(t, remote)
	require.True(t, keys.IsReady())
}

func TestInitIdentityKeysRemote(t *testing.T) {
	raw := testJWKS(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	keys, remote, err := InitIdentityKeys(t.Context(), Config{JWKSURL: srv.URL}, slogx.Discard())
	require.NoError(t, err)
	require.NotNil(t, remote)
	require.True(t, keys.IsReady())
}

func TestInitIdentityKeysRemoteDownIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	keys, remote, err := InitIdentityKeys(t.Context(), Config{JWKSURL: srv.URL}, slogx.Discard())
	require.NoError(t, err)
	require.NotNil(t, remote)
	require.False(t, keys.IsReady())
}

func TestInitIdentityKeysNoSource(t *testing.T) {
	_, _, err := InitIdentityKeys(t.Context(), Config{}, slogx.Discard())
	require.Error(t, err)
}
