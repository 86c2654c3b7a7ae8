// Package crypto implements the asymmetric primitives of the key
// module: the canonical public-key fingerprint packet and RSA-OAEP
// payload wrapping. The packet layout and padding parameters are
// bit-exact interop surfaces; other systems index keys by the
// signatures derived here.
package crypto
