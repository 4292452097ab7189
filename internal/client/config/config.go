package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the agencyctl CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API, without the /api suffix.
//   - TokenFile: where the session token from login/register is cached.
//   - RequestTimeout: per-request deadline.
type Config struct {
	ServerURL      string        `env:"AGENCYCTL_SERVER_URL"`
	TokenFile      string        `env:"AGENCYCTL_TOKEN_FILE"`
	RequestTimeout time.Duration `env:"AGENCYCTL_REQUEST_TIMEOUT"`
}

// CLIFlags lists the flags (with values) understood by parseFlags and the
// config file lookup. Anything else on the command line is a command.
var CLIFlags = []string{"-a", "-f", "-t", "-c", "-config", "--config"}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8001"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".agencydesk", "token")
	}
	return filepath.Join(home, ".agencydesk", "token")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
