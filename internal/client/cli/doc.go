// Package cli provides the interactive WorldCovers command-line client.
//
// It wires configuration, the catalog server API, the optional reference
// services and an interactive REPL. A background watcher pings the server's
// health endpoint and switches between online and offline mode.
//
// Key features:
//   - Catalog search with filters and paging
//   - Record details and images
//   - Sign in / sign out
//   - Contribute a marking and follow your submissions on the dashboard
//   - Request contributor access
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
