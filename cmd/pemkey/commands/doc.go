// Package commands defines the pemkey CLI and wires dependencies for subcommands.
//
// Commands
//
//   - generate   Create a passphrase-protected RSA key pair
//   - signature  Print the keyring signature of a key
//   - wrap       Encrypt a payload with the public key
//   - unwrap     Decrypt a payload with the private key
//   - negotiate  Drive a parameter-negotiation flow from mount options
//
// # Implementation
//
// The root command builds the structured logger and the dependency
// graph (key store, registry, keyring, module) before any subcommand
// runs, so handlers share one wired app context.
package commands
