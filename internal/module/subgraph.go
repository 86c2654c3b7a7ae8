package module

import (
	"fmt"
	"os"
	"strconv"

	"pemkey/internal/blob"
	"pemkey/internal/crypto"
	"pemkey/internal/domain"
	"pemkey/internal/graph"
)

// subgraphCtx is the transient state of one traversal: the accumulating
// path and passphrase and the key-module descriptor being populated.
// It is owned exclusively by the traversal that created it.
type subgraphCtx struct {
	mod        domain.KeyModule
	path       string
	passphrase []byte
}

// destroy wipes the passphrase and drops all references. Called exactly
// once per traversal, on every exit path.
func (c *subgraphCtx) destroy() {
	crypto.Wipe(c.passphrase)
	c.passphrase = nil
	c.path = ""
	c.mod = nil
}

// subgraph is one entry point into a flow of the negotiation graph.
type subgraph struct {
	m     *Module
	g     *graph.Graph[*subgraphCtx]
	first string
}

// Walk drives a sequential traversal from the entry transition. The
// context is destroyed when the traversal ends, successfully or not.
func (s *subgraph) Walk(params []graph.Param, prompter graph.Prompter) ([]string, error) {
	ctx := &subgraphCtx{}
	defer ctx.destroy()

	entry := &graph.Transition[*subgraphCtx]{
		Val:       Alias,
		PrettyVal: "OpenSSL module",
		Next:      s.first,
		Fn:        s.m.hEnter,
	}
	t, err := s.g.Walk(entry, params, prompter, ctx)
	if err != nil {
		return nil, err
	}
	return t.MntParams, nil
}

// hEnter resolves the key-module descriptor by alias before any node is
// visited; a miss aborts the traversal.
func (m *Module) hEnter(t *graph.Traversal[*subgraphCtx], _ *graph.Node[*subgraphCtx], val string) error {
	if m.registry == nil {
		return domain.ErrKeyModuleNotFound
	}
	km, err := m.registry.Find(val)
	if err != nil {
		m.log.Error("cannot find key module", "alias", val)
		return err
	}
	t.Ctx.mod = km
	return nil
}

// hKeyfile records the key file path into the traversal context.
func (m *Module) hKeyfile(t *graph.Traversal[*subgraphCtx], _ *graph.Node[*subgraphCtx], val string) error {
	if val == "" {
		return fmt.Errorf("%w: keyfile", graph.ErrMissingValue)
	}
	t.Ctx.path = val
	return nil
}

// hPasswd records the passphrase and finalizes the use-existing-key
// flow.
func (m *Module) hPasswd(t *graph.Traversal[*subgraphCtx], _ *graph.Node[*subgraphCtx], val string) error {
	t.Ctx.passphrase = []byte(val)
	return m.processKey(t)
}

// hPassEnv resolves the passphrase from the named environment variable.
func (m *Module) hPassEnv(t *graph.Traversal[*subgraphCtx], _ *graph.Node[*subgraphCtx], val string) error {
	pass := os.Getenv(val)
	if pass == "" {
		return fmt.Errorf("%w: environment variable %q", graph.ErrMissingValue, val)
	}
	t.Ctx.passphrase = []byte(pass)
	return m.processKey(t)
}

// hPassFile reads the passphrase as the passwd option of a small
// options file, named either by path or by file descriptor depending on
// the node.
func (m *Module) hPassFile(t *graph.Traversal[*subgraphCtx], n *graph.Node[*subgraphCtx], val string) error {
	pass, err := m.passFromOptionsFile(n, val)
	if err != nil {
		return err
	}
	t.Ctx.passphrase = pass
	return m.processKey(t)
}

// hGenPassphrase records the passphrase and generates a brand-new key
// pair at the collected path; the traversal ends without touching the
// keyring.
func (m *Module) hGenPassphrase(t *graph.Traversal[*subgraphCtx], _ *graph.Node[*subgraphCtx], val string) error {
	t.Ctx.passphrase = []byte(val)
	if err := m.store.GenerateKey(t.Ctx.path, t.Ctx.passphrase); err != nil {
		m.log.Error("error generating key to file", "path", t.Ctx.path)
		return err
	}
	return nil
}

// hGenPassFile is hGenPassphrase with the passphrase taken from an
// options file.
func (m *Module) hGenPassFile(t *graph.Traversal[*subgraphCtx], n *graph.Node[*subgraphCtx], val string) error {
	pass, err := m.passFromOptionsFile(n, val)
	if err != nil {
		return err
	}
	t.Ctx.passphrase = pass
	if err := m.store.GenerateKey(t.Ctx.path, t.Ctx.passphrase); err != nil {
		m.log.Error("error generating key to file", "path", t.Ctx.path)
		return err
	}
	return nil
}

func (m *Module) passFromOptionsFile(n *graph.Node[*subgraphCtx], val string) ([]byte, error) {
	var f *os.File
	switch n.OptNames[0] {
	case "passfile", "passwd_file":
		var err error
		f, err = os.Open(val)
		if err != nil {
			m.log.Error("error attempting to open passphrase file", "path", val)
			return nil, &domain.IOError{Path: val, Err: err}
		}
	case "passfd", "passwd_fd":
		fd, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("bad file descriptor %q: %w", val, err)
		}
		f = os.NewFile(uintptr(fd), "passfd")
		if f == nil {
			return nil, &domain.IOError{Path: val, Err: fmt.Errorf("invalid file descriptor")}
		}
	default:
		return nil, fmt.Errorf("%w: node %s", graph.ErrInvalidTransition, n.ID)
	}
	defer f.Close()

	opts, err := graph.ParseOptions(f)
	if err != nil {
		m.log.Error("error attempting to parse options out of file")
		return nil, &domain.IOError{Path: f.Name(), Err: err}
	}
	pass, ok := graph.FindOption(opts, "passwd")
	if !ok {
		m.log.Error("no passwd option found in file")
		return nil, domain.ErrMissingPassphraseOption
	}
	return []byte(pass), nil
}

// processKey finalizes the use-existing-key flow: serialize the
// context, insert the key into the keyring under its signature, and
// emit the resulting mount option. Failures are reported up through the
// traversal, never fatally.
func (m *Module) processKey(t *graph.Traversal[*subgraphCtx]) error {
	cfg := domain.Config{Path: t.Ctx.path, Passphrase: t.Ctx.passphrase}
	size, err := blob.Size(cfg)
	if err != nil {
		m.log.Error("error serializing configuration")
		return err
	}
	b, err := blob.Marshal(cfg)
	if err != nil {
		m.log.Error("error serializing configuration")
		return err
	}
	if len(b) != size {
		m.log.Error("serialized size disagrees with size query", "query", size, "got", len(b))
		return domain.ErrInternalConsistency
	}
	sig, err := m.KeySignature(b)
	if err != nil {
		return err
	}
	if m.keyring == nil {
		return fmt.Errorf("no keyring configured")
	}
	if err := m.keyring.AddKey(sig, b); err != nil {
		m.log.Error("error attempting to add key to keyring", "alias", Alias)
		return fmt.Errorf("adding key to keyring: %w", err)
	}
	t.MntParams = append(t.MntParams, "ecryptfs_sig="+string(sig))
	return nil
}
