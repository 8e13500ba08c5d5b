// Package cli defines the Cobra command tree for the bimo CLI. Each file in
// this package registers one top-level command (new, open, serve, etc.) with
// the root command. Commands delegate to internal packages for the actual
// work and only handle flags, output formatting, and logging.
package cli
