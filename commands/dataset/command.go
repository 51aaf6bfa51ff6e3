// Package dataset provides the CLI commands that drive a metadata provider.
package dataset

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/dataset-metadata/commands/text"
	"github.com/smartcontractkit/dataset-metadata/metadata"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

var (
	datasetShort = "Dataset metadata operations"

	datasetLong = text.LongDesc(`
		Commands for reading and writing dataset metadata.

		Every command goes through the legacy adapter, so stores that only implement the
		legacy save operation and stores that only implement create and update can both be
		driven by every command.
	`)
)

// Provider is everything the commands need from the opened store.
type Provider interface {
	metadata.Provider
	metadata.LegacySaver
	metadata.Lister
}

// OpenFunc opens the provider for one command invocation. The returned closer is closed when
// the command finishes.
type OpenFunc func(ctx context.Context) (Provider, io.Closer, error)

// Config holds the configuration for dataset commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Open opens the provider. Required.
	Open OpenFunc
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	var missing []string

	if c.Logger == nil {
		missing = append(missing, "Logger")
	}
	if c.Open == nil {
		missing = append(missing, "Open")
	}

	if len(missing) > 0 {
		return errors.New("dataset.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// NewCommand creates a new dataset command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:     "dataset",
		Aliases: []string{"ds"},
		Short:   datasetShort,
		Long:    datasetLong,
	}

	cmd.AddCommand(
		newLoadCmd(cfg),
		newExistsCmd(cfg),
		newListCmd(cfg),
		newCreateCmd(cfg),
		newUpdateCmd(cfg),
		newSaveCmd(cfg),
		newDeleteCmd(cfg),
	)

	return cmd, nil
}

// withProvider opens the provider, runs fn and closes the provider again.
func withProvider(cmd *cobra.Command, cfg Config, fn func(ctx context.Context, p Provider) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, closer, err := cfg.Open(ctx)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() {
			err = errors.Join(err, closer.Close())
		}()
	}

	return fn(ctx, p)
}
