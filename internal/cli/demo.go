package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/shoebox"
	"github.com/roach88/shoebox/record"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Seed a store and show its contents",
		Long: `Seed a fresh store with the default data set and print every
collection.

The demo data is two tweets by two users, wired together through
store-issued identifiers: tweets 101 and 102 referencing users 103
and 104.

Examples:
  shoebox demo
  shoebox demo --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	st := shoebox.New()
	if err := st.Seed(); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed store", err)
	}
	slog.Debug("store seeded", "types", st.Types(), "last_id", st.LastID())

	dump := st.Dump()

	if opts.Format == "json" {
		data, err := record.MarshalCanonical(dump)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to render store", err)
		}
		f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
		return f.Success(json.RawMessage(data))
	}

	w := cmd.OutOrStdout()
	for _, typ := range st.Types() {
		recs := dump[typ]
		fmt.Fprintf(w, "%s (%d):\n", typ, len(recs))
		for _, rec := range recs {
			line, err := record.MarshalCanonical(rec)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to render record", err)
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}
