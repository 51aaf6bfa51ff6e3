// Package flags provides reusable flag helpers for CLI commands.
//
// Only flags shared by several commands belong here. Command-specific flags are defined next to
// the command.
package flags

import (
	"github.com/spf13/cobra"
)

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// DescriptorFile adds the required --file/-f flag naming a YAML descriptor document.
// Retrieve the value with cmd.Flags().GetString("file").
func DescriptorFile(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Path to a YAML descriptor document, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("file")
}

// Config adds the persistent --config/-c flag naming the configuration file.
func Config(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the dsmeta configuration file")
}

// LogLevel adds the persistent --log-level flag overriding the configured level.
func LogLevel(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
}
