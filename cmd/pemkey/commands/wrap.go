package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"pemkey/internal/graph"
)

func wrapCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "wrap [file]",
		Short: "Encrypt a payload with the public key",
		Long:  "Encrypts a payload, read from the named file or stdin, with the public half of the key pair. The payload must fit a single RSA-OAEP block.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := readPayload(args)
			if err != nil {
				return err
			}
			b, err := keyBlob()
			if err != nil {
				return err
			}
			ct, err := wire.Module.Encrypt(b, pt)
			if err != nil {
				return err
			}
			return writePayload(out, ct)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func unwrapCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "unwrap [file]",
		Short: "Decrypt a payload with the private key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct, err := readPayload(args)
			if err != nil {
				return err
			}
			b, err := keyBlob()
			if err != nil {
				return err
			}
			pt, err := wire.Module.Decrypt(b, ct)
			if err != nil {
				return err
			}
			return writePayload(out, pt)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func keyBlob() ([]byte, error) {
	pass, err := resolvedPassphrase(false)
	if err != nil {
		return nil, err
	}
	return wire.Module.GetBlob([]graph.Param{
		{Name: "keyfile", Value: resolvedKeyPath()},
		{Name: "passwd", Value: pass},
	})
}

func readPayload(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func writePayload(out string, b []byte) error {
	if out == "" || out == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(out, b, 0o600)
}
