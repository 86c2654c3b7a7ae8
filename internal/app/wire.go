package app

import (
	"log/slog"

	"pemkey/internal/domain"
	"pemkey/internal/keyring"
	"pemkey/internal/keystore"
	"pemkey/internal/module"
)

// Wire bundles the key module, registry and keyring for the CLI.
type Wire struct {
	Module   *module.Module
	Registry *domain.Registry
	Keyring  *keyring.Memory
	Store    *keystore.Store
	Logger   *slog.Logger
}

// NewWire constructs the dependency graph from cfg and registers the
// module under its alias.
func NewWire(cfg Config) (*Wire, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	reg := domain.NewRegistry()
	ring := keyring.NewMemory()

	mod, err := module.New(module.Config{
		Home:     cfg.Home,
		Keyring:  ring,
		Registry: reg,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	alias, err := mod.Init()
	if err != nil {
		return nil, err
	}
	reg.Register(alias, mod)

	return &Wire{
		Module:   mod,
		Registry: reg,
		Keyring:  ring,
		Store:    mod.Store(),
		Logger:   log,
	}, nil
}
