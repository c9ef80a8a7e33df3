package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/modeest/internal/core"
	"github.com/JonMunkholm/modeest/internal/mode"
)

type analyzeOptions struct {
	method        string
	removeMissing bool
	firstKnown    bool
	columns       []string
	timeout       time.Duration
}

func newAnalyzeCmd(global *globalOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Report the mode of every column of a CSV file",
		Long: `Report the mode of every column of a CSV file. The first non-empty row is
the header. Use - to read from stdin.

Each column is typed (bool, numeric, date or text) from its known cells so
that "1,000" and "1000", or "yes" and "true", count as the same value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), args[0], global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "m", string(mode.MethodFirst), "Estimator: first, all or single")
	cmd.Flags().BoolVar(&opts.removeMissing, "remove-missing", false, "Ignore missing cells instead of treating them as unknown values")
	cmd.Flags().BoolVar(&opts.firstKnown, "first-known", true, "Accept a single mode when it is known to be the first mode")
	cmd.Flags().StringSliceVarP(&opts.columns, "columns", "c", nil, "Only analyze these columns")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Give up after this long (0 = no limit)")

	return cmd
}

func runAnalyze(ctx context.Context, w io.Writer, stdin io.Reader, path string, global *globalOptions, opts *analyzeOptions) error {
	m, err := mode.ParseMethod(opts.method)
	if err != nil {
		return err
	}

	var (
		r    io.Reader = stdin
		size int64
		name = "stdin"
	)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
		r, name = f, path
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := core.AnalyzeColumns(ctx, r, size, core.AnalyzeOptions{
		Method:        m,
		RemoveMissing: opts.removeMissing,
		FirstKnown:    opts.firstKnown,
		MissingTokens: global.missing,
		Columns:       opts.columns,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	slog.Debug("analysis completed",
		"file", name,
		"rows", report.Rows,
		"bytes", report.BytesRead,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if global.format != "text" {
		return writeStructured(w, global.format, report)
	}
	return writeReportText(w, report)
}

func writeReportText(w io.Writer, report *core.ColumnReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COLUMN\tTYPE\tMODE\tKIND\tTOP\tMISSING\tDISTINCT")
	for _, c := range report.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			c.Name, c.Type, c.ModeString(), c.Kind, c.TopCount, c.Missing, c.Distinct)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d rows, method %s, remove missing %t, first known %t\n",
		report.Rows, report.Method, report.RemoveMissing, report.FirstKnown)
	return err
}
