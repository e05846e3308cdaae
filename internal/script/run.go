package script

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/roach88/shoebox"
	"github.com/roach88/shoebox/record"
)

// Runner executes scripts. Each run gets a fresh store, so scripts are
// isolated from one another and deterministic given a fixed run token.
type Runner struct {
	tokens TokenGenerator
	logger *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTokenGenerator overrides the run token source.
func WithTokenGenerator(g TokenGenerator) RunnerOption {
	return func(r *Runner) {
		r.tokens = g
	}
}

// WithLogger overrides the runner's logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner with UUIDv7 run tokens and no log output.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		tokens: UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every step of the script against a fresh store.
//
// Execution never stops early: a failed expectation marks the result
// failed and the remaining steps still run, so the full trace is always
// available.
func (r *Runner) Run(s *Script) *Result {
	token := s.RunToken
	if token == "" {
		token = r.tokens.Generate()
	}

	st := shoebox.New()
	result := NewResult(s.Name, token)

	logger := r.logger.With("script", s.Name, "token", token)
	logger.Info("script started", "steps", len(s.Steps))

	for i, step := range s.Steps {
		event := runStep(st, step)
		event.Seq = int64(i + 1)
		result.Steps = append(result.Steps, event)
		checkExpect(result, i, step, event)
		logger.Debug("step finished",
			"seq", event.Seq,
			"op", event.Op,
			"error", event.Error,
		)
	}

	logger.Info("script finished", "pass", result.Pass, "errors", len(result.Errors))
	return result
}

// runStep executes one step and records its outcome as a trace event.
func runStep(st *shoebox.Store, step Step) TraceEvent {
	event := TraceEvent{Op: step.Op, Type: step.Type}

	switch step.Op {
	case OpSelect:
		if id, ok := record.CoerceID(step.ID); ok {
			event.ID = id
			rec, found := st.SelectByID(step.Type, id)
			if !found {
				event.Missing = true
				break
			}
			event.Result = rec
			event.Count = 1
		} else {
			recs, found := st.SelectAll(step.Type)
			if !found {
				event.Missing = true
				break
			}
			list := make([]any, len(recs))
			for i, rec := range recs {
				list[i] = rec
			}
			event.Result = list
			event.Count = len(recs)
		}

	case OpInsert:
		rec, err := st.Insert(step.Type, step.Element)
		if err != nil {
			event.Error = errorCode(err)
			break
		}
		event.Result = rec
		if id, ok := record.ReadID(rec); ok {
			event.ID = id
		}

	case OpReplace:
		// A non-numeric id cannot address anything; id 0 makes the
		// store report the miss.
		id, _ := record.CoerceID(step.ID)
		event.ID = id
		prior, err := st.Replace(step.Type, id, step.Element)
		if err != nil {
			event.Error = errorCode(err)
			break
		}
		event.Result = prior

	case OpRemove:
		id, _ := record.CoerceID(step.ID)
		event.ID = id
		removed, err := st.Remove(step.Type, id)
		if err != nil {
			event.Error = errorCode(err)
			break
		}
		event.Result = removed

	case OpSeed:
		if err := st.Seed(); err != nil {
			event.Error = errorCode(err)
			break
		}
		types := st.Types()
		list := make([]any, len(types))
		for i, name := range types {
			list[i] = name
		}
		event.Result = list

	case OpReset:
		event.Result = st.Reset(step.Confirm)
	}

	return event
}

// errorCode renders a store failure as its stable code string.
func errorCode(err error) string {
	if code, ok := shoebox.ErrorCode(err); ok {
		return string(code)
	}
	return err.Error()
}

// checkExpect validates a step's outcome against its expect clause.
// Steps without a clause only fail the run on unexpected store errors.
func checkExpect(result *Result, i int, step Step, event TraceEvent) {
	expect := step.Expect
	if expect == nil {
		if event.Error != "" {
			result.AddError(fmt.Sprintf("step %d (%s): unexpected error %s", i, step.Op, event.Error))
		}
		return
	}

	if expect.Error != "" {
		if event.Error != expect.Error {
			result.AddError(fmt.Sprintf("step %d (%s): error = %q, want %q", i, step.Op, event.Error, expect.Error))
		}
		return
	}
	if event.Error != "" {
		result.AddError(fmt.Sprintf("step %d (%s): unexpected error %s", i, step.Op, event.Error))
		return
	}

	if expect.Missing != event.Missing {
		result.AddError(fmt.Sprintf("step %d (%s): missing = %v, want %v", i, step.Op, event.Missing, expect.Missing))
		return
	}

	if expect.Count > 0 && event.Count != expect.Count {
		result.AddError(fmt.Sprintf("step %d (%s): count = %d, want %d", i, step.Op, event.Count, expect.Count))
	}

	if expect.Result != nil && !matchResult(event.Result, expect.Result) {
		result.AddError(fmt.Sprintf("step %d (%s): result %v does not contain %v", i, step.Op, event.Result, expect.Result))
	}
}

// matchResult checks an actual result against expected fields with
// subset semantics. A list result matches when any of its records does.
func matchResult(actual any, expected map[string]any) bool {
	switch got := actual.(type) {
	case map[string]any:
		return containsSubset(got, expected)
	case []any:
		for _, item := range got {
			if rec, ok := item.(map[string]any); ok && containsSubset(rec, expected) {
				return true
			}
		}
	}
	return false
}

// containsSubset reports whether rec carries every expected field with
// an equal value. Expected values pass through record.Clone first so
// YAML's int 101 compares equal to the stored int64.
func containsSubset(rec map[string]any, expected map[string]any) bool {
	for key, want := range expected {
		got, ok := rec[key]
		if !ok {
			return false
		}
		normalized, err := record.Clone(want)
		if err != nil {
			return false
		}
		if !reflect.DeepEqual(got, normalized) {
			return false
		}
	}
	return true
}
