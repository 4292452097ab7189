// Package common contains shared constants and sentinel errors used across
// AgencyDesk components.
package common

// AuthorizationHeaderName is the HTTP header (and lower-cased gRPC metadata
// key) that carries the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme accepted by the server.
const BearerScheme = "Bearer"

// DefaultRole is assigned to identities registered without an explicit role.
const DefaultRole = "team_member"
