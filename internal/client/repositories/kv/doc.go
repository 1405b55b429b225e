// Package kv is the persisted key/value store of the CLI. It keeps the
// session token, the theme and the token signing secret across restarts.
package kv
