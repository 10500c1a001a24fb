package api

import (
	"os"
	"sync"

	"github.com/hongminglow/filmdesk/internal/config"
	"github.com/hongminglow/filmdesk/internal/logger"
)

// ConfigEnv names the environment variable Default reads the config path from.
const ConfigEnv = "FILMDESK_CONFIG"

var (
	defaultMu     sync.Mutex
	defaultClient *Client
	defaultErr    error
	defaultLoaded bool
)

// Default returns the process-wide client, building it on first use from
// config.LoadClient. ConfigEnv may name the config file.
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if !defaultLoaded {
		defaultLoaded = true
		cfg, err := config.LoadClient(os.Getenv(ConfigEnv))
		if err != nil {
			defaultErr = err
		} else {
			defaultClient, defaultErr = New(cfg, WithLogger(logger.Get(cfg.LogLevel)))
		}
	}
	return defaultClient, defaultErr
}

// SetDefault replaces the process-wide client.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultClient = c
	defaultErr = nil
	defaultLoaded = true
}
