// Package config handles loading and parsing the sqtui configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/sqtui/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing, use defaults per field
//
// # Default Values
//
//   - refresh_interval_ms: 2000
//   - log_tail_lines: 1000
//   - all_users: false
//   - ssh_enabled: true
//   - ssh_timeout_ms: 5000
//
// # Validation
//
// A config file that is not valid TOML is a fatal error; nothing is
// guessed from a broken file. Field-level problems are recoverable: an
// out-of-range interval or a path mapping with an empty prefix is skipped,
// the default (or nothing) is used in its place, and a warning is returned
// for the caller to print before the TUI starts.
//
// Path mappings rewrite node-local path prefixes (for example /raid) to
// paths mounted on the login host (for example /nfs); see the logpath
// package for how they are applied.
package config
