package jwtx

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// JWK represents a public key in JSON Web Key format (RFC 7517). Only the
// OKP fields are interpreted, other members are carried through untouched so
// a JWKS can be round-tripped.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`

	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewEd25519JWK builds a JWK for an Ed25519 public key.
func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP",
		Use: use,
		Alg: alg,
		Kid: kid,
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// ParseJWKS decodes a JWKS document.
func ParseJWKS(data []byte) (JWKS, error) {
	var set JWKS
	if err := json.Unmarshal(data, &set); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode jwks: %w", err)
	}
	if len(set.Keys) == 0 {
		return JWKS{}, errors.New("jwtx: jwks contains no keys")
	}
	return set, nil
}

// LoadJWKSFile reads a JWKS document from disk.
func LoadJWKSFile(path string) (JWKS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: read jwks file: %w", err)
	}
	return ParseJWKS(data)
}

// RemoteJWKS keeps a KeySet in sync with the identity provider's published
// JWKS. Refreshes are pulled on demand (startup and unknown kid) and throttled
// so a flood of forged kids cannot hammer the provider.
type RemoteJWKS struct {
	URL    string
	Client *http.Client
	Keys   *KeySet

	limiter *rate.Limiter
}

// NewRemoteJWKS returns a RemoteJWKS allowing at most one refresh per
// minInterval.
func NewRemoteJWKS(url string, keys *KeySet, minInterval time.Duration) *RemoteJWKS {
	return &RemoteJWKS{
		URL:     url,
		Client:  &http.Client{Timeout: 5 * time.Second},
		Keys:    keys,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Refresh fetches the JWKS and replaces the key set.
func (r *RemoteJWKS) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("jwtx: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwtx: fetch jwks: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("jwtx: read jwks: %w", err)
	}

	set, err := ParseJWKS(body)
	if err != nil {
		return err
	}
	return r.Keys.ResetFromJWKS(set)
}

// TryRefresh refreshes unless the throttle is exhausted. It reports whether a
// refresh was attempted.
func (r *RemoteJWKS) TryRefresh(ctx context.Context) (bool, error) {
	if !r.limiter.Allow() {
		return false, nil
	}
	return true, r.Refresh(ctx)
}
