package script

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/shoebox/internal/testutil"
	"github.com/roach88/shoebox/record"
)

// Snapshot captures a script run for golden comparison.
// All fields use canonical JSON serialization for deterministic output.
type Snapshot struct {
	Script string       `json:"script"`
	Token  string       `json:"token,omitempty"`
	Steps  []TraceEvent `json:"steps"`
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical
// JSON serialization, omitting empty fields the same way the JSON tags
// would.
func (s *Snapshot) toCanonicalMap() map[string]any {
	steps := make([]any, len(s.Steps))
	for i, event := range s.Steps {
		steps[i] = event.toCanonicalMap()
	}

	result := map[string]any{
		"script": s.Script,
		"steps":  steps,
	}
	if s.Token != "" {
		result["token"] = s.Token
	}
	return result
}

// toCanonicalMap renders one trace event with empty fields omitted.
func (e *TraceEvent) toCanonicalMap() map[string]any {
	eventMap := map[string]any{
		"seq": e.Seq,
		"op":  e.Op,
	}
	if e.Type != "" {
		eventMap["type"] = e.Type
	}
	if e.ID != 0 {
		eventMap["id"] = e.ID
	}
	if e.Result != nil {
		eventMap["result"] = e.Result
	}
	if e.Count != 0 {
		eventMap["count"] = e.Count
	}
	if e.Missing {
		eventMap["missing"] = e.Missing
	}
	if e.Error != "" {
		eventMap["error"] = e.Error
	}
	return eventMap
}

// MarshalSnapshot renders a run's trace as canonical JSON: the stable,
// byte-for-byte form golden files are written in.
func MarshalSnapshot(result *Result) ([]byte, error) {
	snapshot := Snapshot{
		Script: result.Script,
		Token:  result.Token,
		Steps:  result.Steps,
	}
	return record.MarshalCanonical(snapshot.toCanonicalMap())
}

// MarshalResult renders the full run outcome, including pass/fail and
// expectation errors, as canonical JSON. The CLI emits this form.
func MarshalResult(result *Result) ([]byte, error) {
	snapshot := Snapshot{
		Script: result.Script,
		Token:  result.Token,
		Steps:  result.Steps,
	}

	out := snapshot.toCanonicalMap()
	out["pass"] = result.Pass
	if len(result.Errors) > 0 {
		errs := make([]any, len(result.Errors))
		for i, msg := range result.Errors {
			errs[i] = msg
		}
		out["errors"] = errs
	}
	return record.MarshalCanonical(out)
}

// RunWithGolden executes a script with a fixed run token and compares
// the trace snapshot against a golden file. The golden file is stored
// in testdata/golden/{script.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/script -update
//
// Returns the run result so callers can also check expectations.
// Test failure (via goldie) occurs if the trace doesn't match the
// golden file.
func RunWithGolden(t *testing.T, s *Script) *Result {
	t.Helper()

	runner := NewRunner(WithTokenGenerator(testutil.NewFixedTokenGenerator(s.RunToken)))
	result := runner.Run(s)

	AssertGolden(t, s.Name, result)
	return result
}

// AssertGolden compares the given result's trace against a golden file.
// This is useful when you've already run a script and want to compare
// the result without re-running.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	data, err := MarshalSnapshot(result)
	if err != nil {
		t.Fatalf("failed to marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
