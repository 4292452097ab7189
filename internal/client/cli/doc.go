// Package cli implements agencyctl, the AgencyDesk command-line client.
//
// Commands either run once (agencyctl login alice) or inside an interactive
// shell started when no command is given. Login and register cache the
// session token on disk (see client.TokenStore); other commands send it as
// a bearer token.
package cli
