// Package client contains the transport side of the Magic Editor CLI.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the backend contract for image classification,
//     prompt improvement, image editing and combining, video generation
//     (start + status), community prompts and chat.
//  2. HTTPClient, the JSON-over-HTTP implementation. It tags every request
//     with an X-Request-ID header and maps non-2xx answers to *APIError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite key/value store and its embedded goose migrations.
//
// # Error Handling
//
// Backend failures are *APIError values whose message is the server's
// "error" field, or "Server responded with status N" when the body carries
// none. Connection-level failures match ErrUnavailable with errors.Is.
//
// HTTPClient is safe for concurrent use; all operations honour ctx.
package client
