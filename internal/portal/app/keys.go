package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/clienthub/pkg/jwtx"
)

// jwksMinRefresh throttles on-demand refreshes triggered by unknown kids.
const jwksMinRefresh = 30 * time.Second

// InitIdentityKeys loads the identity provider's public keys from the first
// configured source: a JWKS URL, a JWKS file, or an inline JWKS document.
//
// A remote JWKS that cannot be fetched at startup is not fatal. The key set
// stays empty, /readyz reports identity as unavailable, and the first token
// carrying an unknown kid triggers another fetch. The returned RemoteJWKS is
// nil for static sources.
func InitIdentityKeys(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, *jwtx.RemoteJWKS, error) {
	keys := jwtx.NewKeySet()

	switch {
	case cfg.JWKSURL != "":
		remote := jwtx.NewRemoteJWKS(cfg.JWKSURL, keys, jwksMinRefresh)

		fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := remote.Refresh(fetchCtx); err != nil {
			logger.Warn("initial jwks fetch failed, identity unavailable until refresh",
				"url", cfg.JWKSURL,
				"error", err,
			)
		} else {
			logger.Info("identity keys loaded", "source", "url", "url", cfg.JWKSURL)
		}
		return keys, remote, nil

	case cfg.JWKSFile != "":
		set, err := jwtx.LoadJWKSFile(cfg.JWKSFile)
		if err != nil {
			return nil, nil, err
		}
		if err := keys.ResetFromJWKS(set); err != nil {
			return nil, nil, err
		}
		logger.Info("identity keys loaded", "source", "file", "path", cfg.JWKSFile, "num_keys", len(set.Keys))
		return keys, nil, nil

	case cfg.JWKS != "":
		set, err := jwtx.ParseJWKS([]byte(cfg.JWKS))
		if err != nil {
			return nil, nil, err
		}
		if err := keys.ResetFromJWKS(set); err != nil {
			return nil, nil, err
		}
		logger.Info("identity keys loaded", "source", "inline", "num_keys", len(set.Keys))
		return keys, nil, nil
	}

	return nil, nil, errors.New("no identity key source configured")
}

// refreshJWKS keeps a remote key set current until ctx is cancelled.
func refreshJWKS(ctx context.Context, remote *jwtx.RemoteJWKS, every time.Duration, logger *slog.Logger) {
	if remote == nil || every <= 0 {
		return
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := remote.Refresh(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("jwks refresh failed", "url", remote.URL, "error", err)
			}
		}
	}
}
