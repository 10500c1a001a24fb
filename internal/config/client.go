package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Client defaults.
const (
	DefaultBaseURL    = "http://localhost:8080"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "warn"
	DefaultSessionTTL = 5 * time.Minute
)

// Client holds settings for the API client and the filmctl shell.
type Client struct {
	BaseURL    string
	Timeout    time.Duration
	Headers    map[string]string
	LogLevel   string
	SessionTTL time.Duration
}

// LoadClient reads client settings from defaults, an optional YAML file and
// FILMDESK_* environment variables, in increasing precedence. When path is
// empty the file is looked up as filmdesk.yaml in the working directory and
// in the user config directory; a missing file is not an error.
func LoadClient(path string) (Client, error) {
	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("session_ttl", DefaultSessionTTL)
	v.SetDefault("headers", map[string]string{})

	v.SetEnvPrefix("FILMDESK")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("filmdesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "filmdesk"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Client{}, fmt.Errorf("read client config: %w", err)
		}
	}

	cfg := Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("base_url")), "/"),
		Timeout:    v.GetDuration("timeout"),
		Headers:    v.GetStringMapString("headers"),
		LogLevel:   v.GetString("log_level"),
		SessionTTL: v.GetDuration("session_ttl"),
	}
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// Validate checks that the base URL is an absolute http(s) URL and that
// durations are usable.
func (c Client) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if c.SessionTTL < 0 {
		return errors.New("session_ttl must not be negative")
	}
	return nil
}
