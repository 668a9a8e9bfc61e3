// Package config persists CLI configuration and the cached Polaris
// session token in a TOML file under the user's config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/oauth2"
)

const (
	// EnvConfigDir overrides the default config directory.
	EnvConfigDir = "POLARIS_CONFIG_DIR"

	defaultDirName = ".polaris"
	fileName       = "config.toml"
)

// Config holds the stored account details and session token.
type Config struct {
	// AccountURL is the Polaris account base URL, e.g. https://account.my.rubrik.com.
	AccountURL string `toml:"account_url"`
	// Username is the account the token was issued for.
	Username string `toml:"username"`
	// Token is the cached session token.
	Token Token `toml:"token"`
}

// Token is a stored session token. Expiry is advisory: the client never
// refreshes a token, it only lets the CLI suggest logging in again.
type Token struct {
	AccessToken string    `toml:"access_token"`
	Expiry      time.Time `toml:"expiry"`
}

// HasToken reports whether a token is stored.
func (c *Config) HasToken() bool {
	return c.Token.AccessToken != ""
}

// OAuthToken converts the stored token for use with a polaris client.
func (c *Config) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: c.Token.AccessToken,
		Expiry:      c.Token.Expiry,
	}
}

// SetToken stores a token value.
func (c *Config) SetToken(tok *oauth2.Token) {
	c.Token = Token{
		AccessToken: tok.AccessToken,
		Expiry:      tok.Expiry,
	}
}

// Store reads and writes the config file.
type Store struct {
	path string
}

// NewStore creates a store rooted at dir. An empty dir falls back to
// $POLARIS_CONFIG_DIR, then ~/.polaris.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = os.Getenv(EnvConfigDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, defaultDirName)
	}

	return &Store{path: filepath.Join(dir, fileName)}, nil
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config file. A missing file is not an error and loads an
// empty config.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config file, creating the directory if needed. The file
// holds a credential, so it is not group or world readable.
func (s *Store) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
