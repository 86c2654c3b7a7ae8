package module

import "pemkey/internal/graph"

// Node IDs, stable across both table variants.
const (
	nodeKeyformat   = "keyformat"
	nodeKeyfile     = "keyfile"
	nodePasswd      = "passwd"
	nodePassfile    = "passfile"
	nodePassenv     = "passenv"
	nodePassfd      = "passfd"
	nodePassstdin   = "passstdin"
	nodeDefaultpass = "defaultpass"

	nodeKeysource  = "keysource"
	nodePassMethod = "passwd_specification_method"
	nodePasswdFile = "passwd_file"
	nodePasswdFd   = "passwd_fd"

	nodeGenPassphrase = "passphrase"
)

type tnode = graph.Node[*subgraphCtx]
type ttrans = graph.Transition[*subgraphCtx]

// buildUseLegacy is the table already deployed in the field; its
// mount-option vocabulary must keep working unchanged.
func (m *Module) buildUseLegacy() (*graph.Graph[*subgraphCtx], error) {
	return graph.New(
		&tnode{
			ID:         nodeKeyformat,
			OptNames:   []string{"keyformat"},
			Prompt:     "Key format",
			DefaultVal: "keyfile",
			Flags:      graph.FlagNoValue,
			Transitions: []ttrans{
				{Val: graph.DefaultMatch, PrettyVal: "OpenSSL Key File", Next: nodeKeyfile},
			},
		},
		&tnode{
			ID:           nodeKeyfile,
			OptNames:     []string{"keyfile"},
			Prompt:       "SSL key file",
			SuggestedVal: m.suggestedKeyPath,
			Flags:        graph.FlagEchoInput,
			Transitions: []ttrans{
				{Val: "passwd", Next: nodePasswd, Fn: m.hKeyfile},
				{Val: "passfile", PrettyVal: "Passphrase File", Next: nodePassfile, Fn: m.hKeyfile},
				{Val: "passenv", PrettyVal: "Passphrase ENV", Next: nodePassenv, Fn: m.hKeyfile},
				{Val: "passfd", PrettyVal: "Passphrase File Descriptor", Next: nodePassfd, Fn: m.hKeyfile},
				{Val: "passstdin", PrettyVal: "Passphrase STDIN", Next: nodePassstdin, Fn: m.hKeyfile},
				{Val: graph.DefaultMatch, PrettyVal: "Passphrase", Next: nodeDefaultpass, Fn: m.hKeyfile},
			},
		},
		&tnode{
			ID:          nodePasswd,
			OptNames:    []string{"passwd"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput,
			Transitions: []ttrans{{Fn: m.hPasswd}},
		},
		&tnode{
			ID:          nodePassfile,
			OptNames:    []string{"passfile"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput,
			Transitions: []ttrans{{Fn: m.hPassFile}},
		},
		&tnode{
			ID:          nodePassenv,
			OptNames:    []string{"passenv"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput,
			Transitions: []ttrans{{Fn: m.hPassEnv}},
		},
		&tnode{
			ID:          nodePassfd,
			OptNames:    []string{"passfd"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput,
			Transitions: []ttrans{{Fn: m.hPassFile}},
		},
		&tnode{
			ID:          nodePassstdin,
			OptNames:    []string{"passstdin"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput | graph.FlagVerifyValue | graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hPasswd}},
		},
		&tnode{
			ID:          nodeDefaultpass,
			OptNames:    []string{"defaultpass"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput | graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hPasswd}},
		},
	)
}

// buildUseNew is the newer flow with a named passphrase specification
// method step.
func (m *Module) buildUseNew() (*graph.Graph[*subgraphCtx], error) {
	return graph.New(
		&tnode{
			ID:         nodeKeysource,
			OptNames:   []string{"keysource"},
			Prompt:     "Key source",
			DefaultVal: "keyfile",
			Flags:      graph.FlagNoValue,
			Transitions: []ttrans{
				{Val: graph.DefaultMatch, PrettyVal: "OpenSSL Key File", Next: nodeKeyfile},
			},
		},
		&tnode{
			ID:           nodeKeyfile,
			OptNames:     []string{"keyfile"},
			Prompt:       "PEM key file",
			SuggestedVal: m.suggestedKeyPath,
			Transitions: []ttrans{
				{Val: graph.DefaultMatch, PrettyVal: "Passphrase Method", Next: nodePassMethod, Fn: m.hKeyfile},
			},
		},
		m.passMethodNode(),
		&tnode{
			ID:          nodePasswd,
			OptNames:    []string{"passwd"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput | graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hPasswd}},
		},
		&tnode{
			ID:          nodePasswdFile,
			OptNames:    []string{"passwd_file"},
			Prompt:      "Passphrase File",
			Flags:       graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hPassFile}},
		},
		&tnode{
			ID:          nodePasswdFd,
			OptNames:    []string{"passwd_fd"},
			Prompt:      "Passphrase File Descriptor",
			Flags:       graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hPassFile}},
		},
	)
}

// buildGenLegacy generates a brand-new key pair before the traversal
// completes.
func (m *Module) buildGenLegacy() (*graph.Graph[*subgraphCtx], error) {
	return graph.New(
		&tnode{
			ID:           nodeKeyfile,
			OptNames:     []string{"keyfile"},
			Prompt:       "SSL key file path",
			SuggestedVal: m.suggestedKeyPath,
			Flags:        graph.FlagEchoInput,
			Transitions: []ttrans{
				{Val: graph.DefaultMatch, Next: nodeGenPassphrase, Fn: m.hKeyfile},
			},
		},
		&tnode{
			ID:          nodeGenPassphrase,
			OptNames:    []string{"passphrase"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput,
			Transitions: []ttrans{{Fn: m.hGenPassphrase}},
		},
	)
}

// buildGenNew mirrors the new use-key table but ends in key generation.
func (m *Module) buildGenNew() (*graph.Graph[*subgraphCtx], error) {
	return graph.New(
		&tnode{
			ID:         nodeKeysource,
			OptNames:   []string{"keysource"},
			Prompt:     "Key source",
			DefaultVal: "keyfile",
			Flags:      graph.FlagNoValue,
			Transitions: []ttrans{
				{Val: graph.DefaultMatch, PrettyVal: "OpenSSL Key File", Next: nodeKeyfile},
			},
		},
		&tnode{
			ID:           nodeKeyfile,
			OptNames:     []string{"keyfile"},
			Prompt:       "PEM key file",
			SuggestedVal: m.suggestedKeyPath,
			Transitions: []ttrans{
				{Val: graph.DefaultMatch, PrettyVal: "Passphrase Method", Next: nodePassMethod, Fn: m.hKeyfile},
			},
		},
		m.passMethodNode(),
		&tnode{
			ID:          nodePasswd,
			OptNames:    []string{"passwd"},
			Prompt:      "Passphrase",
			Flags:       graph.FlagMaskOutput | graph.FlagVerifyValue | graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hGenPassphrase}},
		},
		&tnode{
			ID:          nodePasswdFile,
			OptNames:    []string{"passwd_file"},
			Prompt:      "Passphrase File",
			Flags:       graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hGenPassFile}},
		},
		&tnode{
			ID:          nodePasswdFd,
			OptNames:    []string{"passwd_fd"},
			Prompt:      "Passphrase File Descriptor",
			Flags:       graph.FlagStdinRequired,
			Transitions: []ttrans{{Fn: m.hGenPassFile}},
		},
	)
}

// passMethodNode selects how the passphrase arrives. The default
// matches the plain passwd branch so non-interactive callers that omit
// the option keep working.
func (m *Module) passMethodNode() *tnode {
	return &tnode{
		ID:         nodePassMethod,
		OptNames:   []string{"passwd_specification_method"},
		Prompt:     "Method of providing the passphrase",
		DefaultVal: "passwd",
		Flags:      graph.FlagNoValue,
		Transitions: []ttrans{
			{Val: "passwd", PrettyVal: "User-provided Passphrase", Next: nodePasswd},
			{Val: "passwd_file", PrettyVal: "File Containing Passphrase", Next: nodePasswdFile},
			{Val: "passwd_fd", PrettyVal: "File Descriptor for File Containing Passphrase", Next: nodePasswdFd},
		},
	}
}
