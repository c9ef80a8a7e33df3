package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/modeest/internal/core"
	"github.com/JonMunkholm/modeest/internal/mode"
)

type estimateOptions struct {
	method        string
	removeMissing bool
	firstKnown    bool
	valueType     string
}

func newEstimateCmd(global *globalOptions) *cobra.Command {
	opts := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate <value>...",
		Short: "Estimate the mode of the given values",
		Long: `Estimate the mode of the values given as arguments. Values matching --na
are missing.

With --type auto the values are numbers when every known value parses as
one, and strings otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd.OutOrStdout(), args, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "m", string(mode.MethodFirst), "Estimator: first, all or single")
	cmd.Flags().BoolVar(&opts.removeMissing, "remove-missing", false, "Ignore missing values instead of treating them as unknown")
	cmd.Flags().BoolVar(&opts.firstKnown, "first-known", true, "Accept a single mode when it is known to be the first mode")
	cmd.Flags().StringVarP(&opts.valueType, "type", "t", "auto", "Value type: auto, string, number or bool")

	return cmd
}

func runEstimate(w io.Writer, args []string, global *globalOptions, opts *estimateOptions) error {
	values, err := parseValues(args, global.missing, opts.valueType)
	if err != nil {
		return err
	}

	firstKnown := opts.firstKnown
	res, err := core.Estimate(core.EstimateRequest{
		Values:        values,
		Method:        opts.method,
		RemoveMissing: opts.removeMissing,
		FirstKnown:    &firstKnown,
	})
	if err != nil {
		return err
	}

	if global.format != "text" {
		return writeStructured(w, global.format, res)
	}
	_, err = fmt.Fprintf(w, "%s (%s; %d values, %d missing, %d distinct)\n",
		res.Result, res.Result.Kind(), res.Length, res.Missing, res.Distinct)
	return err
}

// parseValues converts arguments to typed values; missing tokens become nil.
func parseValues(args, missing []string, valueType string) ([]any, error) {
	isMissing := make(map[string]bool, len(missing)+1)
	isMissing[""] = true
	for _, m := range missing {
		isMissing[strings.ToLower(strings.TrimSpace(m))] = true
	}

	known := make([]string, 0, len(args))
	for _, a := range args {
		if !isMissing[strings.ToLower(strings.TrimSpace(a))] {
			known = append(known, a)
		}
	}

	if valueType == "auto" {
		valueType = "string"
		if len(known) > 0 && allParse(known, parseNumber) {
			valueType = "number"
		}
	}

	var parse func(string) (any, error)
	switch valueType {
	case "string":
		parse = func(s string) (any, error) { return s, nil }
	case "number":
		parse = parseNumber
	case "bool":
		parse = func(s string) (any, error) { return strconv.ParseBool(strings.TrimSpace(s)) }
	default:
		return nil, fmt.Errorf("unknown value type %q (want auto, string, number or bool)", valueType)
	}

	out := make([]any, len(args))
	for i, a := range args {
		if isMissing[strings.ToLower(strings.TrimSpace(a))] {
			continue
		}
		v, err := parse(a)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q) is not a %s", i+1, a, valueType)
		}
		out[i] = v
	}
	return out, nil
}

// parseNumber rejects NaN, which never compares equal to itself.
func parseNumber(s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) {
		return nil, fmt.Errorf("NaN is not a countable number")
	}
	return f, nil
}

func allParse(values []string, parse func(string) (any, error)) bool {
	for _, v := range values {
		if _, err := parse(v); err != nil {
			return false
		}
	}
	return true
}
