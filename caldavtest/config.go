package caldavtest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/cyp0633/caldavkit/davclient"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvHost       = "CALDAV_HOST"
	EnvPort       = "CALDAV_PORT"
	EnvScheme     = "CALDAV_SCHEME"
	EnvRoot       = "CALDAV_ROOT"
	EnvUsername   = "CALDAV_USERNAME"
	EnvPassword   = "CALDAV_PASSWORD"
	EnvCollection = "CALDAV_COLLECTION"
	EnvTimeout    = "CALDAV_TIMEOUT"
)

// DefaultTimeout bounds every request of a Session.
const DefaultTimeout = 30 * time.Second

// Config is everything a Session needs to reach a server.
type Config struct {
	Credential davclient.Credential
	Collection string
	Timeout    time.Duration
}

// DefaultConfig points at a local development server.
func DefaultConfig() Config {
	return Config{
		Credential: davclient.Credential{
			Host:       "localhost",
			Port:       8080,
			Scheme:     "http",
			WebDAVRoot: "/dav/",
		},
		Collection: "collection_changeme",
		Timeout:    DefaultTimeout,
	}
}

// Configured reports whether credentials were supplied.
func (c Config) Configured() bool {
	return c.Credential.Username != ""
}

// LoadConfig reads files (".env" when none are given) into the process
// environment without overriding variables already set, then builds a Config
// from the CALDAV_* variables on top of DefaultConfig. Missing files are not
// an error.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := DefaultConfig()
	setString(&cfg.Credential.Host, EnvHost)
	setString(&cfg.Credential.Scheme, EnvScheme)
	setString(&cfg.Credential.WebDAVRoot, EnvRoot)
	setString(&cfg.Credential.Username, EnvUsername)
	setString(&cfg.Credential.Password, EnvPassword)
	setString(&cfg.Collection, EnvCollection)

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid %s %q", EnvPort, v)
		}
		cfg.Credential.Port = port
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = timeout
	}
	switch cfg.Credential.Scheme {
	case "http", "https":
	default:
		return Config{}, fmt.Errorf("invalid %s %q", EnvScheme, cfg.Credential.Scheme)
	}
	return cfg, nil
}

// UniqueCollectionName returns prefix followed by a random suffix, so
// concurrent test runs do not share a collection.
func UniqueCollectionName(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
