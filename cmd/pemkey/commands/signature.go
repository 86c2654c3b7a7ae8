package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"pemkey/internal/graph"
)

func signatureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signature",
		Short: "Print the keyring signature of a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvedPassphrase(false)
			if err != nil {
				return err
			}
			b, err := wire.Module.GetBlob([]graph.Param{
				{Name: "keyfile", Value: resolvedKeyPath()},
				{Name: "passwd", Value: pass},
			})
			if err != nil {
				return err
			}
			sig, err := wire.Module.KeySignature(b)
			if err != nil {
				return err
			}
			fmt.Println(sig)
			return nil
		},
	}
}
