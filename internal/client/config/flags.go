package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   base URL of the HTTP API
//	-f string   session token file
//	-t int      request timeout in seconds
func parseFlags(cfg *Config) {
	parseFlagsFrom(cfg, os.Args[1:])
}

func parseFlagsFrom(cfg *Config, args []string) {
	fs := flag.NewFlagSet("agencyctl", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the AgencyDesk API")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "session token file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-f", "-t"})); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
