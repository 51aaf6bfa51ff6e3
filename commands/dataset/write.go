package dataset

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smartcontractkit/dataset-metadata/commands/flags"
	"github.com/smartcontractkit/dataset-metadata/commands/text"
	"github.com/smartcontractkit/dataset-metadata/metadata"
)

var (
	saveLong = text.LongDesc(`
		Saves a dataset descriptor, creating the dataset if it does not exist and replacing
		its descriptor otherwise.

		This is the legacy single-operation entry point. Prefer create or update.
	`)

	writeExample = text.Examples(`
		# Create the events dataset from a descriptor document
		dsmeta dataset create events -f events.yaml

		# Replace its descriptor, reading the document from stdin
		cat events-v2.yaml | dsmeta dataset update events -f -
	`)
)

// writeFunc is one of Create, Update or Save on the provider.
type writeFunc func(ctx context.Context, p Provider, name string, d *metadata.DatasetDescriptor) error

func newCreateCmd(cfg Config) *cobra.Command {
	return newWriteCmd(cfg, "create", "Create a dataset", "", "Created",
		func(ctx context.Context, p Provider, name string, d *metadata.DatasetDescriptor) error {
			_, err := p.Create(ctx, name, d)
			return err
		},
	)
}

func newUpdateCmd(cfg Config) *cobra.Command {
	return newWriteCmd(cfg, "update", "Replace the descriptor of a dataset", "", "Updated",
		func(ctx context.Context, p Provider, name string, d *metadata.DatasetDescriptor) error {
			_, err := p.Update(ctx, name, d)
			return err
		},
	)
}

func newSaveCmd(cfg Config) *cobra.Command {
	return newWriteCmd(cfg, "save", "Create or replace a dataset (legacy)", saveLong, "Saved",
		func(ctx context.Context, p Provider, name string, d *metadata.DatasetDescriptor) error {
			return p.Save(ctx, name, d)
		},
	)
}

func newWriteCmd(cfg Config, use, short, long, verb string, write writeFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use + " NAME",
		Short:   short,
		Long:    long,
		Example: writeExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			d, err := readDescriptor(cmd, flags.MustString(cmd.Flags().GetString("file")))
			if err != nil {
				return err
			}

			return withProvider(cmd, cfg, func(ctx context.Context, p Provider) error {
				if err := write(ctx, p, name, d); err != nil {
					return err
				}
				cfg.Logger.Infow(verb+" dataset metadata", "name", name, "format", d.Format)
				fmt.Fprintf(cmd.OutOrStdout(), "%s dataset %s\n", verb, name)

				return nil
			})
		},
	}

	flags.DescriptorFile(cmd)

	return cmd
}

func newDeleteCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(cmd, cfg, func(ctx context.Context, p Provider) error {
				deleted, err := p.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				if !deleted {
					fmt.Fprintf(cmd.OutOrStdout(), "Dataset %s not found\n", args[0])
					return nil
				}
				cfg.Logger.Infow("Deleted dataset metadata", "name", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted dataset %s\n", args[0])

				return nil
			})
		},
	}
}

// readDescriptor decodes a YAML document from path, or from stdin when path is "-".
func readDescriptor(cmd *cobra.Command, path string) (*metadata.DatasetDescriptor, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var doc metadata.Document
	if err = yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	return doc.Descriptor()
}
