package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pemkey/internal/domain"
	"pemkey/internal/graph"
)

func negotiateCmd() *cobra.Command {
	var (
		opts    []string
		variant string
		gen     bool
	)
	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Drive a parameter-negotiation flow from mount options",
		Long:  "Walks the key module's negotiation subgraph, consuming the supplied mount options in order and prompting for anything missing, then prints the mount options the flow emitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseMountOptions(opts)
			if err != nil {
				return err
			}
			tv, err := parseVariant(variant)
			if err != nil {
				return err
			}

			version := uint32(domain.CapPassphrase | domain.CapPubkey)
			var sg domain.Subgraph
			if gen {
				sg, err = wire.Module.GenKeySubgraph(version, tv)
			} else {
				sg, err = wire.Module.UseKeySubgraph(version, tv)
			}
			if err != nil {
				return err
			}

			mnt, err := sg.Walk(params, &terminalPrompter{})
			if err != nil {
				return err
			}
			for _, p := range mnt {
				fmt.Println(p)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&opts, "option", "o", nil, "mount option name=value (repeatable or comma separated)")
	cmd.Flags().StringVar(&variant, "variant", "legacy", "node table variant: legacy or new")
	cmd.Flags().BoolVar(&gen, "gen", false, "run the generate-new-key flow instead of use-existing-key")
	return cmd
}

func parseMountOptions(opts []string) ([]graph.Param, error) {
	params := make([]graph.Param, 0, len(opts))
	for _, o := range opts {
		name, value, _ := strings.Cut(o, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("bad mount option %q", o)
		}
		params = append(params, graph.Param{Name: name, Value: strings.TrimSpace(value)})
	}
	return params, nil
}

func parseVariant(s string) (domain.TableVariant, error) {
	switch s {
	case "legacy":
		return domain.VariantLegacy, nil
	case "new":
		return domain.VariantNew, nil
	default:
		return 0, fmt.Errorf("unknown table variant %q", s)
	}
}
