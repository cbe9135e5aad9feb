package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime the identity provider stamps on portal
// sessions. The portal only verifies sessions; it never mints them in
// production.
const DefaultSessionTTL = 8 * time.Hour

// Claims are the session claims issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the verified email address of the principal. The portal derives
	// the principal's domain from it.
	Email string `json:"email"`

	// Name is the display name shown in membership lists and event streams.
	Name string `json:"name,omitempty"`

	// Role is either "staff" or "client".
	Role string `json:"role"`
}

// NewSessionClaims builds minimally-correct session claims.
func NewSessionClaims(
	subject, email, name, role string,
	ttl time.Duration,
	issuer string,
	audience []string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry ensures the session hasn't expired (exp) and isn't used
// before nbf, allowing leeway either side for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateIdentity ensures the claims carry the fields the portal needs to
// build a principal.
func (c *Claims) ValidateIdentity() error {
	if c.Subject == "" || c.Email == "" || c.Role == "" {
		return ErrInvalidClaim
	}
	return nil
}
