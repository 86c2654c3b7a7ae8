// Package keystore reads, writes and generates the passphrase-protected
// RSA key files the module operates on. Keys are persisted in OpenSSL
// traditional PEM form, AES-256-CBC encrypted under the passphrase, so
// files written here remain readable by the other tooling that shares
// the per-user key directory.
package keystore
