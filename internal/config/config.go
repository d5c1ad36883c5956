// Package config provides configuration management for the ChirpDeck server.
// It handles loading and parsing YAML configuration files, and provides structured
// access to application settings including server port, X (Twitter) application
// credentials, cookie security parameters, and the Gemini content-generation key.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default lifetimes for the browser-session credential cookies. The pending
// pair must outlive a consent screen round-trip but nothing more; the
// credential pair survives across visits so the refresh flow can renew the
// short-lived access token silently.
const (
	DefaultPendingMaxAgeSeconds = 15 * 60
	DefaultAccessMaxAgeSeconds  = 7 * 24 * 3600
	DefaultRefreshMaxAgeSeconds = 30 * 24 * 3600
)

// Config represents the application's configuration, loaded from a YAML file.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `yaml:"port"`

	// BaseURL is the public base URL of this deployment. The OAuth callback
	// URL is derived from it and must match the URL registered with the X
	// application byte-for-byte, including scheme.
	BaseURL string `yaml:"base-url"`

	// Twitter holds the X application credentials.
	Twitter TwitterConfig `yaml:"twitter"`

	// Gemini holds the LLM content-generation settings.
	Gemini GeminiConfig `yaml:"gemini"`

	// Cookies holds credential-cookie security parameters.
	Cookies CookieConfig `yaml:"cookies"`

	// SessionStore selects the token storage backend: "cookie" (default) or
	// "postgres".
	SessionStore SessionStoreConfig `yaml:"session-store"`

	// ProxyURL is the URL of an optional proxy server for outbound requests.
	ProxyURL string `yaml:"proxy-url"`

	// Debug enables debug-level logging and gin debug mode.
	Debug bool `yaml:"debug"`

	// LoggingToFile writes logs to rotating files instead of stdout.
	LoggingToFile bool `yaml:"logging-to-file"`

	// LogDir overrides the default log directory when file logging is enabled.
	LogDir string `yaml:"log-dir,omitempty"`
}

// TwitterConfig holds the X application credentials used for the OAuth2 PKCE flow.
type TwitterConfig struct {
	// ClientID is the OAuth2 client identifier of the registered X app.
	ClientID string `yaml:"client-id"`

	// ClientSecret is the OAuth2 client secret of the registered X app.
	ClientSecret string `yaml:"client-secret"`
}

// GeminiConfig holds settings for the Gemini generateContent API.
type GeminiConfig struct {
	// APIKey authenticates requests to the Gemini API.
	APIKey string `yaml:"api-key"`

	// Model is the model identifier used for all content flows.
	Model string `yaml:"model"`
}

// CookieConfig holds security parameters for the credential cookies.
type CookieConfig struct {
	// Secret seals cookie values with an AEAD so tokens never reach the
	// browser in the clear. Must be at least 32 bytes.
	Secret string `yaml:"secret"`

	// Secure marks cookies as transport-secure. Disable only for local
	// development over plain HTTP.
	Secure bool `yaml:"secure"`

	// AccessMaxAge is the lifetime of the access-token cookie in seconds.
	AccessMaxAge int `yaml:"access-max-age,omitempty"`

	// RefreshMaxAge is the lifetime of the refresh-token cookie in seconds.
	RefreshMaxAge int `yaml:"refresh-max-age,omitempty"`

	// PendingMaxAge is the lifetime of the pending auth-state cookies in seconds.
	PendingMaxAge int `yaml:"pending-max-age,omitempty"`
}

// SessionStoreConfig selects and configures the token storage backend.
type SessionStoreConfig struct {
	// Type is "cookie" or "postgres". Empty means "cookie".
	Type string `yaml:"type,omitempty"`

	// DSN is the PostgreSQL connection string for the postgres backend.
	DSN string `yaml:"dsn,omitempty"`

	// Table overrides the default session table name.
	Table string `yaml:"table,omitempty"`
}

// LoadConfig reads the YAML configuration from the given path and applies
// environment overrides. A missing file is not an error; environment variables
// alone can carry a full configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Port: 8080}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if errUnmarshal := yaml.Unmarshal(data, cfg); errUnmarshal != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
		}
	case os.IsNotExist(err):
		// Proceed with defaults and environment overrides.
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

// applyEnvOverrides lets environment variables take precedence over file
// values, matching how the dashboard is deployed on managed platforms.
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("TWITTER_CLIENT_ID")); v != "" {
		c.Twitter.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv("TWITTER_CLIENT_SECRET")); v != "" {
		c.Twitter.ClientSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("BASE_URL")); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		c.Gemini.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("COOKIE_SECRET")); v != "" {
		c.Cookies.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_STORE_DSN")); v != "" {
		c.SessionStore.Type = "postgres"
		c.SessionStore.DSN = v
	}
}

// applyDefaults fills in values that are optional in the YAML file.
func (c *Config) applyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Cookies.AccessMaxAge <= 0 {
		c.Cookies.AccessMaxAge = DefaultAccessMaxAgeSeconds
	}
	if c.Cookies.RefreshMaxAge <= 0 {
		c.Cookies.RefreshMaxAge = DefaultRefreshMaxAgeSeconds
	}
	if c.Cookies.PendingMaxAge <= 0 {
		c.Cookies.PendingMaxAge = DefaultPendingMaxAgeSeconds
	}
	if c.SessionStore.Type == "" {
		c.SessionStore.Type = "cookie"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// CallbackURL returns the OAuth callback URL derived from the base URL.
func (c *Config) CallbackURL() string {
	return c.BaseURL + "/auth/callback"
}

// ValidateTwitter reports whether the X application credentials required for
// the OAuth flow are present.
//
// Returns:
//   - error: A configuration error naming the missing settings, nil when complete
func (c *Config) ValidateTwitter() error {
	var missing []string
	if strings.TrimSpace(c.Twitter.ClientID) == "" {
		missing = append(missing, "twitter.client-id")
	}
	if strings.TrimSpace(c.Twitter.ClientSecret) == "" {
		missing = append(missing, "twitter.client-secret")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		missing = append(missing, "base-url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
