package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// GenerateToken creates a random base64url token (no padding) from size bytes
// of crypto/rand entropy.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns the SHA-256 fingerprint of a token, base64url
// encoded (43 chars). Only fingerprints are persisted, the raw token is handed
// to the caller once.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// NewOpaqueToken mints a 256-bit bearer token together with its fingerprint.
// Invite and share link issuance both go through here.
func NewOpaqueToken() (raw, fingerprint string, err error) {
	raw, err = GenerateToken(TokenSize256)
	if err != nil {
		return "", "", err
	}
	return raw, FingerprintToken(raw), nil
}

// MatchesFingerprint reports whether token hashes to fingerprint using a
// constant time comparison.
func MatchesFingerprint(token, fingerprint string) bool {
	got := FingerprintToken(token)
	return subtle.ConstantTimeCompare([]byte(got), []byte(fingerprint)) == 1
}
