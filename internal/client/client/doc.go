// Package client talks to the AgencyDesk REST API on behalf of agencyctl.
//
// HTTPClient implements Client over net/http (instrumented with otelhttp).
// Transport failures surface as ErrUnavailable; non-2xx answers as
// *APIError, which matches ErrUnauthorized for 401s. TokenStore keeps the
// session token on disk between invocations.
package client
