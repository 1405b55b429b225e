// Package cli provides the Magic Editor terminal client.
//
// It wires configuration, the local state database, the backend HTTP client
// and the services into an App, and exposes it two ways: an interactive
// shell and a cobra command tree for scripting.
//
// The shell shows a splash screen while the stored session is checked, asks
// for credentials when there is none, then renders the tab bar and the
// active panel and reads commands until the user leaves. Logging out from
// the shell leads back to the login prompt.
//
// Key features:
//   - Login / Logout with a persisted, expiring session
//   - Light and dark themes, remembered between runs
//   - Image classify, edit and combine; prompt improvement
//   - Video generation with progress polling
//   - Community prompts and the helper bot
//
// The shell is started via App.Root(ctx), which blocks until the user exits.
// See NewRootCommand for the one-shot commands and runREPL for the shell loop.
package cli
