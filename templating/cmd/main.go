// Binary render_template expands ${name} templates against
// today's and yesterday's UTC dates, values files, and
// explicit key=value variables.
package main

import (
	"fmt"
	"log/slog"
	"maps"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/datetemplate/templating"
)

type options struct {
	template    string
	output      string
	values      []string
	valuesFiles []string
	executable  bool
	verbose     bool
}

func (op *options) engine() *templating.Engine {
	return &templating.Engine{ValuesFiles: op.valuesFiles}
}

func newRootCmd() *cobra.Command {
	op := &options{}

	cmd := &cobra.Command{
		Use:   "render_template",
		Short: "Render a ${name} template with date defaults",
		Long: `Render a template whose ${name} placeholders are resolved
against today's and yesterday's UTC dates (yyyy-MM-dd), values
files, and --value key=value pairs. Later sources override
earlier ones.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if op.verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
		},
		RunE: func(*cobra.Command, []string) error {
			return op.engine().Expand(
				op.template, op.output, op.values, op.executable,
			)
		},
	}

	pf := cmd.PersistentFlags()

	pf.StringArrayVar(
		&op.values, "value", nil,
		"variable in key=value format (repeatable)",
	)

	pf.StringArrayVar(
		&op.valuesFiles, "values-file", nil,
		"YAML, JSON or properties values file (repeatable)",
	)

	pf.BoolVarP(
		&op.verbose, "verbose", "v", false,
		"enable debug logging",
	)

	fl := cmd.Flags()

	fl.StringVar(
		&op.template, "template", "",
		"input template file path (default: stdin)",
	)

	fl.StringVar(
		&op.output, "output", "",
		"output file path (default: stdout)",
	)

	fl.BoolVar(
		&op.executable, "executable", false,
		"set executable bit on output file",
	)

	cmd.AddCommand(newContextCmd(op))

	return cmd
}

func newContextCmd(op *options) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the merged template context as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "printing context"

			ctx, err := op.engine().Context(op.values)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			merged := templating.DefaultContext()
			maps.Copy(merged, ctx)

			buf, err := json.MarshalIndent(merged, "", "  ")
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if _, err := fmt.Fprintln(
				cmd.OutOrStdout(), string(buf),
			); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("render_template failed", "error", err)
		os.Exit(1)
	}
}
