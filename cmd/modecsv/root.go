package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/modeest/internal/core"
	"github.com/JonMunkholm/modeest/internal/logging"
)

type globalOptions struct {
	format   string
	logLevel string
	missing  []string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "modecsv",
		Short: "Estimate modes with missing values taken into account",
		Long: `modecsv reports the most frequent value of a sequence, or of every column
of a CSV file, without guessing when missing values could change the answer.

A result is either a single value, a set of tied values, or NA when the
missing entries could overturn it.

Examples:
  modecsv analyze people.csv
  modecsv analyze --method all --columns city,score people.csv
  cat people.csv | modecsv analyze --format json -
  modecsv estimate a b a NA`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel, "text"))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json or yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level on stderr: debug, info, warn, error")
	cmd.PersistentFlags().StringSliceVar(&opts.missing, "na", core.DefaultMissingTokens, "Values read as missing (an empty value always is)")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newEstimateCmd(opts))

	return cmd
}

// writeStructured writes v as indented JSON or as YAML.
func writeStructured(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
