package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/agencydesk/internal/flagx"
	"github.com/dmitrijs2005/agencydesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the current Config value untouched.
type JsonConfig struct {
	ServerURL      string          `json:"server_url"`
	TokenFile      string          `json:"token_file"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by -c / -config, if any.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := applyJson(cfg, data); err != nil {
		panic(err)
	}
}

func applyJson(cfg *Config, data []byte) error {
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
