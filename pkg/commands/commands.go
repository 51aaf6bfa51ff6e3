// Package commands provides the CLI command groups for dsmeta and similar binaries.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory (recommended for most use cases):
//
//	cmds := commands.New(lggr)
//	datasetCmd, err := cmds.Dataset(openFn)
//	if err != nil {
//	    return err
//	}
//	app.AddCommand(datasetCmd)
//
// 2. Via direct package imports (for advanced DI/testing):
//
//	import "github.com/smartcontractkit/dataset-metadata/commands/dataset"
//
//	app.AddCommand(dataset.NewCommand(dataset.Config{
//	    Logger: lggr,
//	    Open:   openFn,
//	}))
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/dataset-metadata/commands/dataset"
	"github.com/smartcontractkit/dataset-metadata/config"
	"github.com/smartcontractkit/dataset-metadata/internal/backend"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

// Commands provides a factory for creating CLI commands with shared configuration.
type Commands struct {
	lggr logger.Logger
}

// New creates a new Commands factory with the given logger.
// The logger will be shared across all commands created by this factory.
func New(lggr logger.Logger) *Commands {
	return &Commands{lggr: lggr}
}

// Dataset creates the dataset command group using open to reach the store.
func (c *Commands) Dataset(open dataset.OpenFunc) (*cobra.Command, error) {
	return dataset.NewCommand(dataset.Config{
		Logger: c.lggr,
		Open:   open,
	})
}

// ConfiguredDataset creates the dataset command group over the backend described by cfg.
// A backend is opened and closed for every command invocation.
func (c *Commands) ConfiguredDataset(cfg config.StoreConfig) (*cobra.Command, error) {
	return c.Dataset(func(ctx context.Context) (dataset.Provider, io.Closer, error) {
		b, err := backend.Open(ctx, cfg, c.lggr)
		if err != nil {
			return nil, nil, err
		}

		return b, b, nil
	})
}
