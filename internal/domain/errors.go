package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when serializing a Config with a
	// missing path or passphrase.
	ErrInvalidConfig = errors.New("config not properly filled in")

	// ErrMalformedBlob is returned when a serialized config declares
	// lengths past the end of the buffer or a field is not
	// NUL-terminated within its declared length.
	ErrMalformedBlob = errors.New("malformed config blob")

	// ErrKeyModuleNotFound is returned when no registered key module
	// matches the requested alias.
	ErrKeyModuleNotFound = errors.New("key module not found")

	// ErrMissingPassphraseOption is returned when a passphrase options
	// file carries no passwd entry.
	ErrMissingPassphraseOption = errors.New("no passwd option found in file")

	// ErrInternalConsistency is returned when a computed serialization
	// size disagrees with the size used to allocate the buffer.
	ErrInternalConsistency = errors.New("internal consistency failure")

	// ErrUnsupported is returned for operations the host's capability
	// mask does not admit.
	ErrUnsupported = errors.New("operation unsupported for this version")
)

// IOError wraps a file or directory failure with the path involved.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error on %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// CryptoError wraps an underlying crypto-library failure.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *CryptoError) Unwrap() error { return e.Err }
