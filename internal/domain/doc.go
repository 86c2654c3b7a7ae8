// Package domain holds the shared vocabulary of the key-module layer:
// the module's private configuration, key signatures, the operation
// table a pluggable backend implements, the keyring contract, and the
// typed error kinds every component surfaces.
package domain
