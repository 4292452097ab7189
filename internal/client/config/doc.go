// Package config loads runtime configuration for the agencyctl CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (AGENCYCTL_*).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the AgencyDesk HTTP API
//	-f string   path of the cached session token
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8001",
//	  "token_file": "/home/me/.agencydesk/token",
//	  "request_timeout": "10s"
//	}
package config
