// Package views holds the screen state of the CLI: the catalog search and
// the contributor dashboard. Views own their filters and loaded data and
// make sure only the newest load publishes its result.
package views
