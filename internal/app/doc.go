// Package app wires application dependencies for the CLI.
//
// It builds the key module, its registry and the keyring from Config,
// exposing them via the Wire struct for commands to use.
package app
