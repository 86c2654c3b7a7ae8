package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pemkey/internal/crypto"
)

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Create a passphrase-protected RSA key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvedPassphrase(true)
			if err != nil {
				return err
			}
			pb := []byte(pass)
			defer crypto.Wipe(pb)

			path := resolvedKeyPath()
			if err := wire.Store.GenerateKey(path, pb); err != nil {
				return err
			}
			fmt.Printf("Key pair written to %s\n", path)
			return nil
		},
	}
}
