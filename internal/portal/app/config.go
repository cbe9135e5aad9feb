package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./portal.db)
	StaffDomain  string        // Optional: email domain staff may invite colleagues from
	InviteTTL    time.Duration // Optional: how long invites stay redeemable (default: 7 days)
	LoginPath    string        // Optional: where unauthenticated navigations are sent (default: /login)

	IdentityIssuer      string        // Required: issuer of session JWTs
	IdentityAudience    string        // Optional: audience session JWTs must carry (default: portal)
	JWKSURL             string        // Identity provider JWKS endpoint; one key source is required
	JWKSFile            string        // Path to a JWKS document on disk
	JWKS                string        // Inline JWKS document
	JWKSRefreshInterval time.Duration // Optional: remote JWKS refresh period (default: 15m)

	EventQueueSize   int // Optional: engagement event buffer (default: 1024)
	EventMaxAttempts int // Optional: write attempts per event (default: 5)

	QueryCacheSize int           // Optional: in-process query cache entries (default: 1024)
	QueryCacheTTL  time.Duration // Optional: cached query lifetime (default: 30s)
	RedisAddr      string        // Optional: shared query cache, replaces the in-process cache
	RedisPassword  string        // Optional
	RedisDB        int           // Optional
}

// configFile is the YAML schema read from PORTAL_CONFIG_FILE. Durations
// use time.ParseDuration syntax.
type configFile struct {
	Server struct {
		Env           string `yaml:"env"`
		Port          int    `yaml:"port"`
		LogLevel      string `yaml:"log_level"`
		LogFormat     string `yaml:"log_format"`
		ShutdownGrace string `yaml:"shutdown_grace_period"`
	} `yaml:"server"`
	Portal struct {
		DatabaseFile string `yaml:"database_file"`
		StaffDomain  string `yaml:"staff_domain"`
		InviteTTL    string `yaml:"invite_ttl"`
		LoginPath    string `yaml:"login_path"`
	} `yaml:"portal"`
	Identity struct {
		Issuer          string `yaml:"issuer"`
		Audience        string `yaml:"audience"`
		JWKSURL         string `yaml:"jwks_url"`
		JWKSFile        string `yaml:"jwks_file"`
		RefreshInterval string `yaml:"refresh_interval"`
	} `yaml:"identity"`
	Events struct {
		QueueSize   int `yaml:"queue_size"`
		MaxAttempts int `yaml:"max_attempts"`
	} `yaml:"events"`
	Cache struct {
		Size          int    `yaml:"size"`
		TTL           string `yaml:"ttl"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`
}

// LoadConfig resolves configuration as defaults, then the optional YAML file
// named by PORTAL_CONFIG_FILE, then environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
		DatabaseFile:        "portal.db",
		InviteTTL:           7 * 24 * time.Hour,
		LoginPath:           "/login",
		IdentityAudience:    "portal",
		JWKSRefreshInterval: 15 * time.Minute,
		EventQueueSize:      1024,
		EventMaxAttempts:    5,
		QueryCacheSize:      1024,
		QueryCacheTTL:       30 * time.Second,
	}

	if path := os.Getenv("PORTAL_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	cfg.DatabaseFile = getEnvOrDefault("PORTAL_DATABASE_FILE", cfg.DatabaseFile)
	cfg.StaffDomain = getEnvOrDefault("PORTAL_STAFF_DOMAIN", cfg.StaffDomain)
	cfg.InviteTTL = getEnvDurationOrDefault("PORTAL_INVITE_TTL", cfg.InviteTTL)
	cfg.LoginPath = getEnvOrDefault("PORTAL_LOGIN_PATH", cfg.LoginPath)

	cfg.IdentityIssuer = getEnvOrDefault("IDENTITY_ISSUER", cfg.IdentityIssuer)
	cfg.IdentityAudience = getEnvOrDefault("IDENTITY_AUDIENCE", cfg.IdentityAudience)
	cfg.JWKSURL = getEnvOrDefault("IDENTITY_JWKS_URL", cfg.JWKSURL)
	cfg.JWKSFile = getEnvOrDefault("IDENTITY_JWKS_FILE", cfg.JWKSFile)
	cfg.JWKS = getEnvOrDefault("IDENTITY_JWKS", cfg.JWKS)
	cfg.JWKSRefreshInterval = getEnvDurationOrDefault("IDENTITY_JWKS_REFRESH_INTERVAL", cfg.JWKSRefreshInterval)

	cfg.EventQueueSize = getEnvIntOrDefault("EVENT_QUEUE_SIZE", cfg.EventQueueSize)
	cfg.EventMaxAttempts = getEnvIntOrDefault("EVENT_MAX_ATTEMPTS", cfg.EventMaxAttempts)

	cfg.QueryCacheSize = getEnvIntOrDefault("QUERY_CACHE_SIZE", cfg.QueryCacheSize)
	cfg.QueryCacheTTL = getEnvDurationOrDefault("QUERY_CACHE_TTL", cfg.QueryCacheTTL)
	cfg.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvIntOrDefault("REDIS_DB", cfg.RedisDB)

	return cfg, cfg.Validate()
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.IdentityIssuer == "" {
		errs = append(errs, errors.New("IDENTITY_ISSUER is required"))
	}
	if c.JWKSURL == "" && c.JWKSFile == "" && c.JWKS == "" {
		errs = append(errs, errors.New("one of IDENTITY_JWKS_URL, IDENTITY_JWKS_FILE or IDENTITY_JWKS is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.InviteTTL <= 0 {
		errs = append(errs, errors.New("PORTAL_INVITE_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.Env, f.Server.Env)
	setInt(&c.Port, f.Server.Port)
	setString(&c.LogLevel, f.Server.LogLevel)
	setString(&c.LogFormat, f.Server.LogFormat)

	setString(&c.DatabaseFile, f.Portal.DatabaseFile)
	setString(&c.StaffDomain, f.Portal.StaffDomain)
	setString(&c.LoginPath, f.Portal.LoginPath)

	setString(&c.IdentityIssuer, f.Identity.Issuer)
	setString(&c.IdentityAudience, f.Identity.Audience)
	setString(&c.JWKSURL, f.Identity.JWKSURL)
	setString(&c.JWKSFile, f.Identity.JWKSFile)

	setInt(&c.EventQueueSize, f.Events.QueueSize)
	setInt(&c.EventMaxAttempts, f.Events.MaxAttempts)

	setInt(&c.QueryCacheSize, f.Cache.Size)
	setString(&c.RedisAddr, f.Cache.RedisAddr)
	setString(&c.RedisPassword, f.Cache.RedisPassword)
	setInt(&c.RedisDB, f.Cache.RedisDB)

	for _, d := range []struct {
		dst *time.Duration
		raw string
		key string
	}{
		{&c.ShutdownGracePeriod, f.Server.ShutdownGrace, "server.shutdown_grace_period"},
		{&c.InviteTTL, f.Portal.InviteTTL, "portal.invite_ttl"},
		{&c.JWKSRefreshInterval, f.Identity.RefreshInterval, "identity.refresh_interval"},
		{&c.QueryCacheTTL, f.Cache.TTL, "cache.ttl"},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse config file %s: %s: %w", path, d.key, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
