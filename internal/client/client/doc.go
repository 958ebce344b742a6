// Package client contains the transport layer of the WorldCovers CLI.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface) covering
//     sign-in, the catalog, reference options, submissions and login
//     requests.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that attaches
//     the access token of the current session, transparently refreshes it
//     once when the server answers 401, and maps status codes to sentinel
//     errors.
//  3. A grpc.health.v1 probe (see HealthChecker) used to switch between
//     online and offline mode.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrConflict
// and ErrRateLimited. Failed requests return *APIError, which unwraps to the
// matching sentinel and carries per-field validation messages.
package client
