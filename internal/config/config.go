package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	Environment string
	ListenAddr  string

	// Comma-separated "id:secret:scope1 scope2" entries. Empty means the
	// instruction endpoint runs without authentication.
	OAuthClients string

	RedisAddr           string
	RateLimitCapacity   int
	RateLimitRefillRate float64

	TLSCertFile        string
	TLSKeyFile         string
	TLSCAFile          string
	RequireClientCerts bool

	IPAllowlist  []string
	MaxBodyBytes int64
}

const defaultMaxBodyBytes = 1 << 20

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:        os.Getenv("APP_ENV"),
		ListenAddr:         getenvDefault("LISTEN_ADDR", ":8080"),
		OAuthClients:       os.Getenv("OAUTH_CLIENTS"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		TLSCertFile:        os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:         os.Getenv("TLS_KEY_FILE"),
		TLSCAFile:          os.Getenv("TLS_CA_FILE"),
		RequireClientCerts: os.Getenv("TLS_REQUIRE_CLIENT_CERTS") == "true",
		MaxBodyBytes:       defaultMaxBodyBytes,
	}

	if v := os.Getenv("IP_ALLOWLIST"); v != "" {
		cfg.IPAllowlist = strings.Split(v, ",")
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_BODY_BYTES %q: %w", v, err)
		}
		cfg.MaxBodyBytes = n
	}

	if v := os.Getenv("RATE_LIMIT_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_CAPACITY %q: %w", v, err)
		}
		cfg.RateLimitCapacity = n
	}

	if v := os.Getenv("RATE_LIMIT_REFILL_PER_SEC"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_PER_SEC %q: %w", v, err)
		}
		cfg.RateLimitRefillRate = f
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent. Production
// deployments must carry authentication and TLS; development may run open.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return errors.New("missing required environment variable: APP_ENV")
	}

	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if c.RequireClientCerts && c.TLSCAFile == "" {
		return errors.New("TLS_REQUIRE_CLIENT_CERTS needs TLS_CA_FILE")
	}

	if (c.RateLimitCapacity > 0) != (c.RateLimitRefillRate > 0) {
		return errors.New("RATE_LIMIT_CAPACITY and RATE_LIMIT_REFILL_PER_SEC must be set together")
	}
	if c.RateLimitCapacity > 0 && c.RedisAddr == "" {
		return errors.New("rate limiting needs REDIS_ADDR")
	}

	if c.Environment == "production" || c.Environment == "staging" {
		var missing []string
		if c.OAuthClients == "" {
			missing = append(missing, "OAUTH_CLIENTS")
		}
		if c.TLSCertFile == "" {
			missing = append(missing, "TLS_CERT_FILE")
		}
		if c.TLSKeyFile == "" {
			missing = append(missing, "TLS_KEY_FILE")
		}
		if len(missing) > 0 {
			return errors.New("missing required environment variables for " + c.Environment + ": " + strings.Join(missing, ", "))
		}
	}

	return nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
