// Package querycache derives stable identities for list queries and caches
// their serialized results in process or in Redis.
package querycache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey reports a key request without a prefix or scope.
var ErrInvalidKey = errors.New("querycache: prefix and scope are required")

// Key returns the cache key for params scoped to a query kind and an owner
// (usually a hub id). params is rendered as canonical JSON, objects with
// sorted keys and no insignificant whitespace, so two logically equal
// parameter sets produce the same key regardless of field order.
//
// The result looks like "events:<scope>:<sha256 hex>".
func Key(prefix, scope string, params any) (string, error) {
	if prefix == "" || scope == "" || strings.Contains(prefix, ":") {
		return "", ErrInvalidKey
	}

	canonical, err := Canonical(params)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(prefix))
	h.Write([]byte{0})
	h.Write([]byte(scope))
	h.Write([]byte{0})
	h.Write(canonical)

	return prefix + ":" + scope + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// Canonical renders v as canonical JSON.
func Canonical(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("querycache: marshal params: %w", err)
	}

	// Round trip through a generic value so struct field order stops
	// mattering; encoding/json sorts map keys on output.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("querycache: normalise params: %w", err)
	}
	return json.Marshal(generic)
}
