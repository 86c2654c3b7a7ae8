package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pemkey/internal/app"
)

var (
	home       string
	keyPath    string
	passphrase string
	verbose    bool

	wire *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "pemkey",
		Short:         "OpenSSL-compatible key module for stacked filesystem mounts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(log)

			var err error
			wire, err = app.NewWire(app.Config{Home: home, Logger: log})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "per-user base directory (default $HOME)")
	root.PersistentFlags().StringVar(&keyPath, "key", "", "PEM key file (default <home>/.ecryptfs/pki/openssl/key.pem)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "key passphrase (prompted when empty)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(generateCmd(), signatureCmd(), wrapCmd(), unwrapCmd(), negotiateCmd())
	return root.Execute()
}

// resolvedKeyPath applies the per-user default when --key is not given.
func resolvedKeyPath() string {
	if keyPath != "" {
		return keyPath
	}
	return wire.Store.DefaultKeyPath()
}

// resolvedPassphrase prompts for the passphrase when -p is not given.
func resolvedPassphrase(verify bool) (string, error) {
	if passphrase != "" {
		return passphrase, nil
	}
	return (&terminalPrompter{}).PromptValue("Passphrase", true, verify)
}
