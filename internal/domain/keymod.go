package domain

import (
	"sync"

	"pemkey/internal/graph"
)

// Subgraph is one entry point into a key module's parameter negotiation
// graph. Walk consumes the supplied mount options in order, prompting
// for anything missing, and returns the mount options the traversal
// emitted (for example ecryptfs_sig=<signature>).
type Subgraph interface {
	Walk(params []graph.Param, prompter graph.Prompter) ([]string, error)
}

// KeyModule is the operation table a pluggable key backend implements
// for the host.
type KeyModule interface {
	// Init returns the module alias the host registers it under.
	Init() (alias string, err error)

	// UseKeySubgraph returns the entry for the use-existing-key flow,
	// or ErrUnsupported when version lacks CapPubkey.
	UseKeySubgraph(version uint32, variant TableVariant) (Subgraph, error)

	// GenKeySubgraph returns the entry for the generate-new-key flow,
	// or ErrUnsupported when version lacks CapPubkey.
	GenKeySubgraph(version uint32, variant TableVariant) (Subgraph, error)

	// GetBlob serializes the module configuration built from the
	// supplied parameter values.
	GetBlob(params []graph.Param) ([]byte, error)

	// KeySignature loads the key pair named by blob and derives its
	// keyring signature.
	KeySignature(blob []byte) (Signature, error)

	// Encrypt and Decrypt transform an opaque payload with the key
	// pair named by blob. CiphertextSize and PlaintextSize are the
	// size-query halves of the contract: they return the modulus byte
	// length without performing a transform.
	Encrypt(blob, plaintext []byte) ([]byte, error)
	Decrypt(blob, ciphertext []byte) ([]byte, error)
	CiphertextSize(blob []byte) (int, error)
	PlaintextSize(blob []byte) (int, error)

	// Finalize releases per-instance state.
	Finalize()
}

// Keyring stores key-module blobs under their signatures. The real
// implementation lives with the host; this package only fixes the
// contract the finalize step calls.
type Keyring interface {
	AddKey(sig Signature, blob []byte) error
}

// Registry resolves key modules by alias.
type Registry struct {
	mu   sync.Mutex
	mods map[string]KeyModule
}

func NewRegistry() *Registry {
	return &Registry{mods: make(map[string]KeyModule)}
}

func (r *Registry) Register(alias string, m KeyModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mods[alias] = m
}

// Find returns the module registered under alias, or
// ErrKeyModuleNotFound.
func (r *Registry) Find(alias string) (KeyModule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mods[alias]
	if !ok {
		return nil, ErrKeyModuleNotFound
	}
	return m, nil
}
