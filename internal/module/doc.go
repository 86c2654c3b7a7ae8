// Package module implements the OpenSSL-compatible key backend: an RSA
// key pair in a passphrase-protected PEM file, identified in the
// keyring by a fingerprint of its public components, and configured
// through a parameter-negotiation subgraph driven by mount options.
//
// The operation table in module.go is the contract the host invokes;
// subgraph.go holds the per-traversal context and transition handlers;
// tables.go builds the legacy and new node-table variants.
package module
