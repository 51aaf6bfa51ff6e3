// Command dsmeta reads and writes dataset metadata through the legacy adapter.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smartcontractkit/dataset-metadata/commands/flags"
	"github.com/smartcontractkit/dataset-metadata/commands/text"
	"github.com/smartcontractkit/dataset-metadata/config"
	"github.com/smartcontractkit/dataset-metadata/pkg/commands"
	"github.com/smartcontractkit/dataset-metadata/pkg/logger"
)

var rootLong = text.LongDesc(`
	dsmeta manages dataset metadata descriptors.

	The backend is chosen by the configuration file or the DSMETA_* environment variables.
	The memory backend does not persist anything between invocations.
`)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the root flags needed before the command tree can be built.
type options struct {
	configPath string
	logLevel   string
}

// parseOptions extracts the root flags from args, ignoring everything that belongs to
// subcommands. Cobra parses the same flags again when executing.
func parseOptions(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("dsmeta", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.StringVarP(&opts.configPath, "config", "c", "", "")
	fs.StringVar(&opts.logLevel, "log-level", "", "")

	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return opts, err
	}

	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	lggr, err := logger.FromConfig(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = lggr.Sync() }()

	root, err := newRootCmd(cfg, lggr)
	if err != nil {
		return err
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func newRootCmd(cfg *config.Config, lggr logger.Logger) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "dsmeta",
		Short:         "Dataset metadata tool",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Config(root)
	flags.LogLevel(root)

	ds, err := commands.New(lggr).ConfiguredDataset(cfg.Store)
	if err != nil {
		return nil, err
	}
	root.AddCommand(ds)

	return root, nil
}
