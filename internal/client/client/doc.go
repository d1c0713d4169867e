// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. A transport-agnostic contract for the recording service (see Client):
//     login, signup, job submission, the job roster, stop signals and
//     profile updates.
//  2. A REST/JSON implementation (see HTTPClient) that attaches the stored
//     credential as an Authorization header, tags every request with an
//     X-Request-ID and maps HTTP status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite state database and applies the embedded goose migrations.
//
// # Error Handling
//
// Failures are reported through sentinel errors matched with errors.Is:
// ErrUnauthorized, ErrAuthentication, ErrValidation, ErrNetwork, ErrNotFound
// and ErrLocalDataNotAvailable. Non-2xx responses arrive as *APIError,
// which carries the service's "detail" message and unwraps to a sentinel.
//
// No call is retried here; every failure is returned once to the caller.
package client
