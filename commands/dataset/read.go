package dataset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/dataset-metadata/commands/text"
	"github.com/smartcontractkit/dataset-metadata/metadata"
)

var (
	loadExample = text.Examples(`
		# Print the descriptor of the events dataset as YAML
		dsmeta dataset load events
	`)

	listExample = text.Examples(`
		# List every dataset known to the configured store
		dsmeta dataset list
	`)
)

func newLoadCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:     "load NAME",
		Short:   "Print a dataset descriptor",
		Example: loadExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, cfg, func(ctx context.Context, p Provider) error {
				d, err := p.Load(ctx, args[0])
				if err != nil {
					return err
				}
				if d == nil {
					return fmt.Errorf("%w: %s", metadata.ErrNoSuchDataset, args[0])
				}

				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err = enc.Encode(metadata.NewDocument(d)); err != nil {
					return err
				}

				return enc.Close()
			})
		},
	}
}

func newExistsCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "exists NAME",
		Short: "Print whether a dataset exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, cfg, func(ctx context.Context, p Provider) error {
				ok, err := p.Exists(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(ok))

				return nil
			})
		},
	}
}

func newListCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List dataset names",
		Example: listExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withProvider(cmd, cfg, func(ctx context.Context, p Provider) error {
				names, err := p.Names(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}

				return nil
			})
		},
	}
}
