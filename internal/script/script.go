package script

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script defines a scripted store session.
// Scripts drive a fresh store through a sequence of operations and
// check each operation's outcome.
type Script struct {
	// Name uniquely identifies this script.
	Name string `yaml:"name"`

	// Description explains what this script demonstrates.
	Description string `yaml:"description"`

	// Steps contains the operations to run, in order.
	Steps []Step `yaml:"steps"`

	// RunToken is an optional fixed run token for deterministic output.
	// If empty, the runner's token generator supplies one.
	RunToken string `yaml:"run_token,omitempty"`
}

// Step is one store operation with an optional expectation.
type Step struct {
	// Op is the operation name: select, insert, replace, remove,
	// seed, or reset.
	Op string `yaml:"op"`

	// Type is the collection the operation targets. Required for
	// select, insert, replace, and remove.
	Type string `yaml:"type,omitempty"`

	// ID addresses a record. Select takes it leniently: numbers and
	// numeric strings filter by id, anything else means the whole
	// collection. Replace and remove need a numeric value to hit
	// anything.
	ID any `yaml:"id,omitempty"`

	// Element is the record payload for insert and replace.
	Element map[string]any `yaml:"element,omitempty"`

	// Confirm is the reset confirmation. Reset without confirm: true
	// is a no-op, same as the store API.
	Confirm bool `yaml:"confirm,omitempty"`

	// Expect specifies the expected outcome. If nil, the step is
	// assumed to succeed and only unexpected store errors count
	// against the run.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies an expected operation outcome.
type ExpectClause struct {
	// Error is the expected store error code (e.g. "NOT_FOUND").
	// Empty means the operation must succeed.
	Error string `yaml:"error,omitempty"`

	// Missing expects a select to find nothing.
	Missing bool `yaml:"missing,omitempty"`

	// Result contains expected result field values.
	// This is a subset match - only specified fields are compared.
	// Against a list result, some record must match.
	Result map[string]any `yaml:"result,omitempty"`

	// Count is the expected number of records a select returns.
	// Zero means unchecked.
	Count int `yaml:"count,omitempty"`
}

// Operation name constants.
const (
	OpSelect  = "select"
	OpInsert  = "insert"
	OpReplace = "replace"
	OpRemove  = "remove"
	OpSeed    = "seed"
	OpReset   = "reset"
)

// Load reads and parses a script YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return Parse(data)
}

// Parse parses script YAML with strict field validation (catches typos
// like "step:" vs "steps:").
func Parse(data []byte) (*Script, error) {
	var s Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScript(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}

	return &s, nil
}

// validateScript checks that required fields are present and valid.
func validateScript(s *Script) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its operation.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpSelect:
		if step.Type == "" {
			return fmt.Errorf("steps[%d]: type is required for select", index)
		}
	case OpInsert:
		if step.Type == "" {
			return fmt.Errorf("steps[%d]: type is required for insert", index)
		}
		if step.Element == nil {
			return fmt.Errorf("steps[%d]: element is required for insert", index)
		}
	case OpReplace:
		if step.Type == "" {
			return fmt.Errorf("steps[%d]: type is required for replace", index)
		}
		if step.ID == nil {
			return fmt.Errorf("steps[%d]: id is required for replace", index)
		}
		if step.Element == nil {
			return fmt.Errorf("steps[%d]: element is required for replace", index)
		}
	case OpRemove:
		if step.Type == "" {
			return fmt.Errorf("steps[%d]: type is required for remove", index)
		}
		if step.ID == nil {
			return fmt.Errorf("steps[%d]: id is required for remove", index)
		}
	case OpSeed, OpReset:
		// No required fields.
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	return nil
}
