package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/shoebox"
	"github.com/roach88/shoebox/record"
)

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	Seed bool
}

const shellHelp = `Commands:
  select <type> [id]          read a record or a whole collection
  insert <type> <json>        add a record (the store assigns its id)
  replace <type> <id> <json>  swap a record in place (ids must match)
  remove <type> <id>          delete a record and close the gap
  seed                        load the demo data set
  reset confirm               wipe memory (the id sequence survives)
  types                       list collections
  dump                        print everything
  seq                         show the highest issued id
  help                        show this list
  quit                        leave the shell
`

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShellOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive store session",
		Long: `Open an interactive session against a single store.

The store lives for the length of the session, so identifiers keep
growing across seeds and resets, exactly like the library API. Store
errors are printed and the session continues.

Example:
  shoebox shell --seed`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Seed, "seed", false, "seed the store before the first prompt")

	return cmd
}

func runShell(opts *ShellOptions, cmd *cobra.Command) error {
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
	w := cmd.OutOrStdout()

	if opts.Seed {
		if err := st.Seed(); err != nil {
			return WrapExitError(ExitCommandError, "failed to seed store", err)
		}
		fmt.Fprintln(w, "Seeded demo data.")
	}

	fmt.Fprintln(w, `Type "help" for commands, "quit" to leave.`)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(w, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line != "" {
			evalShellLine(st, line, w)
		}
		fmt.Fprint(w, "> ")
	}
	return scanner.Err()
}

// evalShellLine executes one shell command against the session store.
func evalShellLine(st *shoebox.Store, line string, w io.Writer) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "select":
		typ, id, _ := strings.Cut(rest, " ")
		if typ == "" {
			fmt.Fprintln(w, "usage: select <type> [id]")
			return
		}
		var filter any
		if id = strings.TrimSpace(id); id != "" {
			filter = id
		}
		res, found := st.Select(typ, filter)
		if !found {
			fmt.Fprintln(w, "(nothing)")
			return
		}
		printValue(w, res)

	case "insert":
		typ, raw, _ := strings.Cut(rest, " ")
		if typ == "" || strings.TrimSpace(raw) == "" {
			fmt.Fprintln(w, "usage: insert <type> <json>")
			return
		}
		elem, err := parseElement(raw)
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
		rec, err := st.Insert(typ, elem)
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
		printValue(w, rec)

	case "replace":
		typ, tail, _ := strings.Cut(rest, " ")
		idStr, raw, _ := strings.Cut(strings.TrimSpace(tail), " ")
		if typ == "" || idStr == "" || strings.TrimSpace(raw) == "" {
			fmt.Fprintln(w, "usage: replace <type> <id> <json>")
			return
		}
		id, ok := record.CoerceID(idStr)
		if !ok {
			fmt.Fprintf(w, "%q is not a usable id\n", idStr)
			return
		}
		elem, err := parseElement(raw)
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
		prior, err := st.Replace(typ, id, elem)
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
		printValue(w, prior)

	case "remove":
		typ, idStr, _ := strings.Cut(rest, " ")
		idStr = strings.TrimSpace(idStr)
		if typ == "" || idStr == "" {
			fmt.Fprintln(w, "usage: remove <type> <id>")
			return
		}
		id, ok := record.CoerceID(idStr)
		if !ok {
			fmt.Fprintf(w, "%q is not a usable id\n", idStr)
			return
		}
		rec, err := st.Remove(typ, id)
		if err != nil {
			fmt.Fprintln(w, err)
			return
		}
		printValue(w, rec)

	case "seed":
		if err := st.Seed(); err != nil {
			fmt.Fprintln(w, err)
			return
		}
		fmt.Fprintf(w, "Seeded. Collections: %s\n", strings.Join(st.Types(), ", "))

	case "reset":
		if rest != "confirm" {
			fmt.Fprintln(w, `Declined. Use "reset confirm" to wipe the store.`)
			return
		}
		st.Reset(true)
		fmt.Fprintln(w, "Wiped. The id sequence keeps counting.")

	case "types":
		types := st.Types()
		if len(types) == 0 {
			fmt.Fprintln(w, "(none)")
			return
		}
		fmt.Fprintln(w, strings.Join(types, ", "))

	case "dump":
		printValue(w, st.Dump())

	case "seq":
		fmt.Fprintln(w, st.LastID())

	case "help":
		fmt.Fprint(w, shellHelp)

	default:
		fmt.Fprintf(w, "unknown command %q (try \"help\")\n", name)
	}
}

// parseElement decodes a JSON object with numbers preserved as
// json.Number, which the store normalizes on the way in.
func parseElement(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var elem map[string]any
	if err := dec.Decode(&elem); err != nil {
		return nil, fmt.Errorf("invalid JSON element: %w", err)
	}
	return elem, nil
}

// printValue renders a store value as one line of canonical JSON.
func printValue(w io.Writer, v any) {
	data, err := record.MarshalCanonical(v)
	if err != nil {
		fmt.Fprintf(w, "cannot render value: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}
