// Package client contains the client-side transport and storage bootstrap
// for the TrueKicks CLI.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the API interface) for the storefront backend:
//     catalog reads, Register, Login, PlaceOrder and the order history.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that maps
//     transport failures and HTTP status codes to sentinel errors.
//  3. A gRPC health-check pinger (see HealthPinger) used by the
//     connectivity watcher.
//  4. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrRejected
// and ErrServer.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
