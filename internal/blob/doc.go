// Package blob serializes the key module's private configuration into
// the opaque byte sequence the host stores as key metadata.
//
// Wire layout, for the path and then the passphrase, contiguous with no
// padding: a 2-byte little-endian length counting the field's bytes
// plus a terminating NUL, followed by that many bytes. Unmarshal copies
// both fields into owned storage; it never aliases the input buffer.
package blob
