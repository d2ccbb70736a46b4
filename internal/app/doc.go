// Package app provides the orchestration layer for the sqtui application.
//
// # Overview
//
// This package wires together configuration, the Slurm command client, log
// path resolution, and the UI to create the complete sqtui experience. It
// serves as the composition root where all dependencies are initialized and
// connected.
//
// # Startup Sequence
//
//  1. Load configuration from ~/.config/sqtui/config.toml (defaults when missing)
//  2. Open the debug log file if one was requested
//  3. Run one squeue poll synchronously; failure here is fatal
//  4. Build the SSH client and log path resolver from the remote settings
//  5. Start the TUI and block until the user exits or the context cancels
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - Config file present but unparseable
//   - Debug log file cannot be opened
//   - The initial squeue poll fails
//
// Recoverable errors (surfaced in the UI, polling continues):
//   - Periodic squeue poll failures after the first
//   - scontrol detail fetch failures
//   - Log files that cannot be resolved or read
//
// Out-of-range config values never abort startup; they fall back to defaults
// with a warning on stderr before the TUI takes over the terminal.
package app
