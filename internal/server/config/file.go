package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/agencydesk/internal/flagx"
	"github.com/dmitrijs2005/agencydesk/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the configuration. Durations use
// timex.Duration so both "168h" and integer nanoseconds are accepted.
type FileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	CORSOrigins                 []string       `json:"cors_origins" yaml:"cors_origins"`
	LogFormat                   string         `json:"log_format" yaml:"log_format"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	S3RootUser                  string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	OTLPEndpoint                string         `json:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure                bool           `json:"otlp_insecure" yaml:"otlp_insecure"`
}

// parseFile loads the file named by -c/-config, if any, and copies every
// non-empty value into config. The format is picked from the extension:
// .yml/.yaml is YAML, anything else is JSON.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	fc := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, fc); err != nil {
			return nil, err
		}
	}

	return fc, nil
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.SecretKey, fc.SecretKey)
	if fc.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.BcryptCost > 0 {
		config.BcryptCost = fc.BcryptCost
	}
	if len(fc.CORSOrigins) > 0 {
		config.CORSOrigins = fc.CORSOrigins
	}
	setString(&config.LogFormat, fc.LogFormat)
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.S3RootUser, fc.S3RootUser)
	setString(&config.S3RootPassword, fc.S3RootPassword)
	setString(&config.S3Bucket, fc.S3Bucket)
	setString(&config.S3Region, fc.S3Region)
	setString(&config.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&config.OTLPEndpoint, fc.OTLPEndpoint)
	if fc.OTLPInsecure {
		config.OTLPInsecure = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
