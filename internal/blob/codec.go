package blob

import (
	"fmt"

	"pemkey/internal/domain"
)

// lenPrefix is the length prefix size of each field.
const lenPrefix = 2

// maxFieldLen is the largest length a 16-bit prefix can declare.
const maxFieldLen = 0xffff

// Size returns the number of bytes Marshal will produce for c. Both
// must agree; the caller treats a disagreement as an internal error.
func Size(c domain.Config) (int, error) {
	if c.Path == "" || len(c.Passphrase) == 0 {
		return 0, domain.ErrInvalidConfig
	}
	pathLen := len(c.Path) + 1
	passLen := len(c.Passphrase) + 1
	if pathLen > maxFieldLen || passLen > maxFieldLen {
		return 0, domain.ErrInvalidConfig
	}
	return lenPrefix + pathLen + lenPrefix + passLen, nil
}

// Marshal serializes c into the wire layout.
func Marshal(c domain.Config) ([]byte, error) {
	size, err := Size(c)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, size)
	out = appendField(out, []byte(c.Path))
	out = appendField(out, c.Passphrase)
	return out, nil
}

func appendField(dst, field []byte) []byte {
	n := len(field) + 1 // terminating NUL counted
	dst = append(dst, byte(n), byte(n>>8))
	dst = append(dst, field...)
	return append(dst, 0)
}

// Unmarshal parses the two length-prefixed fields out of b into owned
// storage. A declared length running past the end of the buffer, a
// zero-length field, or a field not NUL-terminated within its declared
// length is rejected with ErrMalformedBlob.
func Unmarshal(b []byte) (domain.Config, error) {
	path, rest, err := readField(b)
	if err != nil {
		return domain.Config{}, fmt.Errorf("%w: path: %w", domain.ErrMalformedBlob, err)
	}
	pass, _, err := readField(rest)
	if err != nil {
		return domain.Config{}, fmt.Errorf("%w: passphrase: %w", domain.ErrMalformedBlob, err)
	}
	out := domain.Config{
		Path:       string(path),
		Passphrase: append([]byte(nil), pass...),
	}
	return out, nil
}

func readField(b []byte) (field, rest []byte, err error) {
	if len(b) < lenPrefix {
		return nil, nil, fmt.Errorf("truncated length prefix")
	}
	n := int(b[0]) | int(b[1])<<8
	if n == 0 {
		return nil, nil, fmt.Errorf("zero-length field")
	}
	if n > len(b)-lenPrefix {
		return nil, nil, fmt.Errorf("declared length %d exceeds remaining %d bytes", n, len(b)-lenPrefix)
	}
	raw := b[lenPrefix : lenPrefix+n]
	if raw[n-1] != 0 {
		return nil, nil, fmt.Errorf("missing NUL terminator")
	}
	return raw[:n-1], b[lenPrefix+n:], nil
}
