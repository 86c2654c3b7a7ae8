package module

import (
	"log/slog"
	"os"

	"pemkey/internal/blob"
	"pemkey/internal/crypto"
	"pemkey/internal/domain"
	"pemkey/internal/graph"
	"pemkey/internal/keystore"
)

// Alias is the name the host selects this key module by.
const Alias = "openssl"

// Config carries the per-instance wiring for a Module.
type Config struct {
	// Home is the user's home directory; resolved via the OS when
	// empty.
	Home string

	// Keyring receives finalized keys under their signatures.
	Keyring domain.Keyring

	// Registry resolves the module descriptor at subgraph entry.
	Registry *domain.Registry

	Logger *slog.Logger
}

// Module is one instance of the key backend. It holds no state shared
// across invocations beyond its configuration; per-operation state is
// owned by the operation that created it.
type Module struct {
	home             string
	suggestedKeyPath string
	store            *keystore.Store
	keyring          domain.Keyring
	registry         *domain.Registry
	log              *slog.Logger

	useLegacy *graph.Graph[*subgraphCtx]
	useNew    *graph.Graph[*subgraphCtx]
	genLegacy *graph.Graph[*subgraphCtx]
	genNew    *graph.Graph[*subgraphCtx]
}

// New builds a Module, resolving the per-user suggested key path and
// constructing both node-table variants for both flows.
func New(cfg Config) (*Module, error) {
	home := cfg.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, &domain.IOError{Path: "home directory", Err: err}
		}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	m := &Module{
		home:     home,
		store:    keystore.New(home, Alias, log),
		keyring:  cfg.Keyring,
		registry: cfg.Registry,
		log:      log,
	}
	m.suggestedKeyPath = m.store.DefaultKeyPath()

	var err error
	if m.useLegacy, err = m.buildUseLegacy(); err != nil {
		return nil, err
	}
	if m.useNew, err = m.buildUseNew(); err != nil {
		return nil, err
	}
	if m.genLegacy, err = m.buildGenLegacy(); err != nil {
		return nil, err
	}
	if m.genNew, err = m.buildGenNew(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init returns the alias the host registers this module under.
func (m *Module) Init() (string, error) { return Alias, nil }

// Finalize releases the per-instance graphs and suggested values.
func (m *Module) Finalize() {
	m.useLegacy, m.useNew, m.genLegacy, m.genNew = nil, nil, nil, nil
	m.suggestedKeyPath = ""
}

// Store exposes the key store for host-side use.
func (m *Module) Store() *keystore.Store { return m.store }

// UseKeySubgraph returns the entry into the use-existing-key flow.
func (m *Module) UseKeySubgraph(version uint32, variant domain.TableVariant) (domain.Subgraph, error) {
	return m.subgraphFor(version, variant, m.useLegacy, nodeKeyformat, m.useNew, nodeKeysource)
}

// GenKeySubgraph returns the entry into the generate-new-key flow.
func (m *Module) GenKeySubgraph(version uint32, variant domain.TableVariant) (domain.Subgraph, error) {
	return m.subgraphFor(version, variant, m.genLegacy, nodeKeyfile, m.genNew, nodeKeysource)
}

func (m *Module) subgraphFor(version uint32, variant domain.TableVariant, legacy *graph.Graph[*subgraphCtx], legacyFirst string, newer *graph.Graph[*subgraphCtx], newFirst string) (domain.Subgraph, error) {
	if version&domain.CapPubkey == 0 {
		return nil, domain.ErrUnsupported
	}
	g, first := legacy, legacyFirst
	if variant == domain.VariantNew {
		g, first = newer, newFirst
	}
	if g == nil {
		return nil, domain.ErrUnsupported
	}
	return &subgraph{m: m, g: g, first: first}, nil
}

// GetBlob serializes the configuration built from the supplied
// parameter values. The passphrase copy is wiped before returning.
func (m *Module) GetBlob(params []graph.Param) ([]byte, error) {
	var cfg domain.Config
	for _, p := range params {
		switch p.Name {
		case "path", "keyfile":
			cfg.Path = p.Value
		case "passphrase", "passwd":
			cfg.Passphrase = []byte(p.Value)
		}
	}
	defer crypto.Wipe(cfg.Passphrase)
	b, err := blob.Marshal(cfg)
	if err != nil {
		m.log.Error("error parsing parameter values")
		return nil, err
	}
	return b, nil
}

// KeySignature loads the key pair named by b and derives its keyring
// signature.
func (m *Module) KeySignature(b []byte) (domain.Signature, error) {
	key, err := m.store.ReadKey(b)
	if err != nil {
		m.log.Error("error attempting to read RSA key from file")
		return "", err
	}
	return crypto.Signature(&key.PublicKey), nil
}

// Encrypt wraps plaintext with the public key named by b.
func (m *Module) Encrypt(b, plaintext []byte) ([]byte, error) {
	key, err := m.store.ReadKey(b)
	if err != nil {
		return nil, err
	}
	return crypto.Encrypt(&key.PublicKey, plaintext)
}

// Decrypt unwraps ciphertext with the private key named by b.
func (m *Module) Decrypt(b, ciphertext []byte) ([]byte, error) {
	key, err := m.store.ReadKey(b)
	if err != nil {
		return nil, err
	}
	return crypto.Decrypt(key, ciphertext)
}

// CiphertextSize is the size-query half of Encrypt: the modulus byte
// length, with no transform performed.
func (m *Module) CiphertextSize(b []byte) (int, error) {
	key, err := m.store.ReadKey(b)
	if err != nil {
		return 0, err
	}
	return key.Size(), nil
}

// PlaintextSize is the size-query half of Decrypt.
func (m *Module) PlaintextSize(b []byte) (int, error) {
	key, err := m.store.ReadKey(b)
	if err != nil {
		return 0, err
	}
	return key.Size(), nil
}

var _ domain.KeyModule = (*Module)(nil)
