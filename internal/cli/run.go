package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/shoebox/internal/script"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions

	// TokenGenerator allows overriding the run token source (for testing).
	// If nil, defaults to UUIDv7Generator.
	TokenGenerator script.TokenGenerator
}

// RunResult holds the overall outcome across scripts.
type RunResult struct {
	Scripts []json.RawMessage `json:"scripts"`
	Passed  int               `json:"passed"`
	Failed  int               `json:"failed"`
	Total   int               `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script.yaml>...",
		Short: "Run store scripts",
		Long: `Run one or more YAML scripts, each against its own fresh store.

A script is a sequence of store operations (select, insert, replace,
remove, seed, reset) with optional expectations. Runs are isolated, so
a script with a pinned run_token produces identical output every time.

Exit codes:
  0 - All scripts passed
  1 - One or more expectations failed
  2 - Command error (unreadable or invalid script)

Examples:
  shoebox run demo.yaml
  shoebox run scripts/crud.yaml scripts/seed.yaml
  shoebox run demo.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(opts, args, cmd)
		},
	}

	return cmd
}

func runScripts(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	runnerOpts := []script.RunnerOption{}
	if opts.Verbose {
		runnerOpts = append(runnerOpts, script.WithLogger(slog.Default()))
	}
	if opts.TokenGenerator != nil {
		runnerOpts = append(runnerOpts, script.WithTokenGenerator(opts.TokenGenerator))
	}
	runner := script.NewRunner(runnerOpts...)

	w := cmd.OutOrStdout()
	outcome := RunResult{
		Scripts: make([]json.RawMessage, 0, len(paths)),
		Total:   len(paths),
	}

	for _, path := range paths {
		s, err := script.Load(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load script %s", path), err)
		}

		result := runner.Run(s)
		if result.Pass {
			outcome.Passed++
		} else {
			outcome.Failed++
		}

		if opts.Format == "json" {
			data, err := script.MarshalResult(result)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to render result", err)
			}
			outcome.Scripts = append(outcome.Scripts, json.RawMessage(data))
			continue
		}

		if result.Pass {
			fmt.Fprintf(w, "✓ %s (%d steps)\n", result.Script, len(result.Steps))
		} else {
			fmt.Fprintf(w, "✗ %s\n", result.Script)
			for _, e := range result.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: "json", Writer: w}
		if err := f.Success(outcome); err != nil {
			return WrapExitError(ExitCommandError, "failed to encode output", err)
		}
	} else {
		fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", outcome.Passed, outcome.Failed, outcome.Total)
	}

	if outcome.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scripts failed", outcome.Failed, outcome.Total))
	}
	return nil
}
