package domain

// Config is the module's private configuration: where the key file
// lives and the passphrase protecting it. The passphrase is kept as a
// byte slice so it can be wiped when the owning context is destroyed.
type Config struct {
	Path       string
	Passphrase []byte
}

// Signature is the keyring lookup key for a key pair: a 40-character
// lowercase hexadecimal digest of the public components.
type Signature string

const (
	// SigSize is the digest length in bytes.
	SigSize = 20
	// SigSizeHex is the length of a Signature string.
	SigSizeHex = SigSize * 2
)

// Capability bits of the host's version mask. Subgraph entry points are
// only handed out when the mask includes public-key support.
const (
	CapPassphrase uint32 = 0x00000001
	CapPubkey     uint32 = 0x00000002
	CapPlaintext  uint32 = 0x00000004
	CapXattr      uint32 = 0x00000010
)

// TableVariant selects one of the two coexisting node tables. Mount
// options deployed against the legacy table must keep working, so the
// tables are alternatives, never merged.
type TableVariant int

const (
	VariantLegacy TableVariant = iota
	VariantNew
)
