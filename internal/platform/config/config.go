// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. An optional .env
file is loaded first with 'joho/godotenv'; real environment variables win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, token codec) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvProduction is the ENVIRONMENT value that enables strict checks.
const EnvProduction = "production"

// # Configuration Schema

// Config holds all runtime configuration for the Stockroom API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"json"`

	// Relational Database (PostgreSQL)
	DatabaseURL        string        `env:"DATABASE_URL,required"`
	DBMaxConns         int32         `env:"DB_MAX_CONNS"         envDefault:"25"`
	DBMinConns         int32         `env:"DB_MIN_CONNS"         envDefault:"2"`
	DBStatementTimeout time.Duration `env:"DB_STATEMENT_TIMEOUT" envDefault:"30s"`

	// Key-Value Cache (Redis). Empty keeps revocation and limiter state in memory.
	RedisURL      string `env:"REDIS_URL"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Token signing secrets, hex or raw text. Required in production.
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_TTL"  envDefault:"1h"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Role sets for the write/read permission guards
	WriteRoles []string `env:"WRITE_ROLES" envSeparator:"," envDefault:"ADMIN,MANAGER,USER,SUPERVISOR"`
	ReadRoles  []string `env:"READ_ROLES"  envSeparator:","`

	// RevocationSweepInterval is how often expired revocations are purged.
	RevocationSweepInterval time.Duration `env:"REVOCATION_SWEEP_INTERVAL" envDefault:"1h"`

	// Exact browser origins allowed besides the product domain, comma separated
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`

	// Proxies whose X-Real-IP / X-Forwarded-For headers are believed.
	// CIDR ranges or single addresses; empty trusts nobody.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env: %w", err)
	}

	return Parse()
}

// Parse maps the current environment into a [Config] and validates it.
func Parse() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the rules struct tags cannot express.
func (c *Config) Validate() error {
	var problems []error

	if c.IsProduction() {
		if c.AccessTokenSecret == "" {
			problems = append(problems, errors.New("ACCESS_TOKEN_SECRET is required in production"))
		}
		if c.RefreshTokenSecret == "" {
			problems = append(problems, errors.New("REFRESH_TOKEN_SECRET is required in production"))
		}
	}

	if c.AccessTokenSecret != "" && c.AccessTokenSecret == c.RefreshTokenSecret {
		problems = append(problems, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		problems = append(problems, errors.New("token TTLs must be positive"))
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		problems = append(problems, errors.New("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, which must be positive"))
	}

	if c.RevocationSweepInterval <= 0 {
		problems = append(problems, errors.New("REVOCATION_SWEEP_INTERVAL must be positive"))
	}

	if _, err := parseProxies(c.TrustedProxies); err != nil {
		problems = append(problems, err)
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w", errors.Join(problems...))
	}
	return nil
}

// # Accessors

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// AllowedOrigins returns the extra CORS origins with blanks dropped.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.ExtraOrigins))
	for _, origin := range c.ExtraOrigins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// TrustedProxyPrefixes returns TRUSTED_PROXIES as address ranges. Entries
// are checked by [Config.Validate]; anything unparsable is skipped here.
func (c *Config) TrustedProxyPrefixes() []netip.Prefix {
	prefixes, _ := parseProxies(c.TrustedProxies)
	return prefixes
}

// AccessSecret returns the decoded access token secret.
func (c *Config) AccessSecret() []byte {
	return decodeSecret(c.AccessTokenSecret)
}

// RefreshSecret returns the decoded refresh token secret.
func (c *Config) RefreshSecret() []byte {
	return decodeSecret(c.RefreshTokenSecret)
}

// decodeSecret accepts the hex output of cmd/gensecret and falls back to the raw bytes.
func decodeSecret(value string) []byte {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if decoded, err := hex.DecodeString(value); err == nil && len(decoded) > 0 {
		return decoded
	}
	return []byte(value)
}

// parseProxies accepts "10.0.0.0/8" style ranges and bare addresses.
func parseProxies(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	var problems []error

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				problems = append(problems, fmt.Errorf("TRUSTED_PROXIES: invalid range %q", value))
				continue
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(value)
		if err != nil {
			problems = append(problems, fmt.Errorf("TRUSTED_PROXIES: invalid address %q", value))
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, errors.Join(problems...)
}
