// Package cli defines the Cobra command tree for the go-cli-template CLI.
// Each file in this package registers one top-level command with the root
// command. Command implementations delegate to internal packages for
// formatting and configuration and only handle flag parsing, I/O and the
// mapping of errors to exit codes.
package cli
