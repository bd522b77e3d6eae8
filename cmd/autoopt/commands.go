package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thalesfsp/autoopt"
	_ "github.com/thalesfsp/autoopt/gonumplot"
	"github.com/thalesfsp/autoopt/space"
)

// newRootCmd builds the command tree. Flags are bound to local variables so
// tests can build independent trees.
func newRootCmd() *cobra.Command {
	var (
		spacePath string
		verbose   bool
	)

	root := &cobra.Command{
		Use:           "autoopt",
		Short:         "Inspect and plot hyperparameter search spaces",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}

			autoopt.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().StringVar(&spacePath, "space", "", "path to the search-space YAML file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = root.MarkPersistentFlagRequired("space")

	root.AddCommand(
		newInspectCmd(&spacePath),
		newDensityCmd(&spacePath),
		newPlotCmd(&spacePath),
	)

	return root
}

func newInspectCmd(spacePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List the declared parameters with their shape and mean",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dists, err := loadDistributions(*spacePath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PARAMETER\tDISTRIBUTION\tMEAN\tQ")

			for _, d := range dists {
				q := "-"
				if z, ok := d.(autoopt.Discretized); ok {
					q = fmt.Sprintf("%g", z.Q())
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name(), d, mean(d), q)
			}

			return w.Flush()
		},
	}
}

func newDensityCmd(spacePath *string) *cobra.Command {
	var param, value string

	cmd := &cobra.Command{
		Use:   "density",
		Short: "Evaluate the density of a value under one parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dists, err := loadDistributions(*spacePath)
			if err != nil {
				return err
			}

			for _, d := range dists {
				if d.Name() == param {
					fmt.Fprintf(cmd.OutOrStdout(), "%g\n", density(d, value))

					return nil
				}
			}

			return fmt.Errorf("parameter %q is not declared in %s", param, *spacePath)
		},
	}

	cmd.Flags().StringVar(&param, "param", "", "parameter name")
	cmd.Flags().StringVar(&value, "value", "", "value to evaluate")
	_ = cmd.MarkFlagRequired("param")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newPlotCmd(spacePath *string) *cobra.Command {
	var out, format string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the density of every parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dists, err := loadDistributions(*spacePath)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			for _, d := range dists {
				fig, err := d.Plot()
				if err != nil {
					return err
				}

				path := filepath.Join(out, d.Name()+"."+format)
				if err := fig.Save(path); err != nil {
					return fmt.Errorf("saving %s: %w", path, err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "image format (png, svg, pdf, ...)")

	return cmd
}

func loadDistributions(path string) ([]autoopt.Distribution, error) {
	f, err := space.Load(path)
	if err != nil {
		return nil, err
	}

	return f.Distributions()
}

// mean renders the mean of the built-in shapes.
func mean(d autoopt.Distribution) string {
	switch m := d.(type) {
	case interface{ Mean() float64 }:
		return fmt.Sprintf("%g", m.Mean())
	case interface{ Mean() any }:
		return fmt.Sprint(m.Mean())
	case interface{ Mean() string }:
		return m.Mean()
	default:
		return "-"
	}
}

// density evaluates raw as a string label first, then as an integer, a float
// and a boolean, and returns the first non-zero density.
func density(d autoopt.Distribution, raw string) float64 {
	candidates := []any{raw}

	if i, err := strconv.Atoi(raw); err == nil {
		candidates = append(candidates, i)
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		candidates = append(candidates, f)
	}

	if b, err := strconv.ParseBool(raw); err == nil {
		candidates = append(candidates, b)
	}

	for _, c := range candidates {
		if p := d.Density(c); p > 0 {
			return p
		}
	}

	return 0
}
