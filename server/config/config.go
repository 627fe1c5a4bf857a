package config

import (
	"errors"
	"net/url"
	"os"
	"regexp"

	"github.com/pelletier/go-toml"
)

const (
	DefaultListenAddress = "0.0.0.0:8975"
	DefaultFeedURL       = "https://www.tcmb.gov.tr/kurlar"
	DefaultFetchTimeout  = int64(30) // seconds
)

var (
	ErrInvalidListenAddress = errors.New("invalid listen address")
	ErrInvalidFeedURL       = errors.New("invalid feed URL")
	ErrInvalidFetchTimeout  = errors.New("invalid fetch timeout")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level server configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`

	// The base URL of the upstream rate feed
	FeedURL string `toml:"feed_url"`

	// The per-request feed fetch timeout, in seconds
	FetchTimeoutSeconds int64 `toml:"fetch_timeout_seconds"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress:       DefaultListenAddress,
		CORSConfig:          DefaultCORSConfig(),
		FeedURL:             DefaultFeedURL,
		FetchTimeoutSeconds: DefaultFetchTimeout,
	}
}

// ValidateConfig validates the server configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	// Validate the feed URL
	parsed, err := url.Parse(config.FeedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ErrInvalidFeedURL
	}

	// Validate the fetch timeout
	if config.FetchTimeoutSeconds <= 0 {
		return ErrInvalidFetchTimeout
	}

	return nil
}

// Read reads the configuration from the given path
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	var cfg Config

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
