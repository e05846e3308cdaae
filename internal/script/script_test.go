package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidScript(t *testing.T) {
	content := `
name: basic_crud
description: "Insert then read back"
run_token: "test-run-0001"
steps:
  - op: insert
    type: tweets
    element:
      message: "hello world"
    expect:
      result:
        id: 101
  - op: select
    type: tweets
    id: 101
  - op: remove
    type: tweets
    id: 101
`
	s, err := Parse([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "basic_crud", s.Name)
	assert.Equal(t, "Insert then read back", s.Description)
	assert.Equal(t, "test-run-0001", s.RunToken)
	require.Len(t, s.Steps, 3)
	assert.Equal(t, OpInsert, s.Steps[0].Op)
	assert.Equal(t, "hello world", s.Steps[0].Element["message"])
	require.NotNil(t, s.Steps[0].Expect)
	assert.Equal(t, 101, s.Steps[0].Expect.Result["id"])
	assert.Equal(t, 101, s.Steps[1].ID)
}

func TestParse_MissingName(t *testing.T) {
	content := `
description: "No name"
steps:
  - op: seed
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestParse_MissingDescription(t *testing.T) {
	content := `
name: test
steps:
  - op: seed
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")
}

func TestParse_MissingSteps(t *testing.T) {
	content := `
name: test
description: "No steps"
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps list is required")
}

func TestParse_UnknownOp(t *testing.T) {
	content := `
name: test
description: "Bad op"
steps:
  - op: upsert
    type: tweets
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "upsert"`)
}

func TestParse_MissingOp(t *testing.T) {
	content := `
name: test
description: "Step without op"
steps:
  - type: tweets
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]: op is required")
}

func TestParse_SelectRequiresType(t *testing.T) {
	content := `
name: test
description: "Select without type"
steps:
  - op: select
    id: 101
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type is required for select")
}

func TestParse_InsertRequiresElement(t *testing.T) {
	content := `
name: test
description: "Insert without element"
steps:
  - op: insert
    type: tweets
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element is required for insert")
}

func TestParse_ReplaceRequiresID(t *testing.T) {
	content := `
name: test
description: "Replace without id"
steps:
  - op: replace
    type: tweets
    element:
      message: "x"
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required for replace")
}

func TestParse_RemoveRequiresID(t *testing.T) {
	content := `
name: test
description: "Remove without id"
steps:
  - op: remove
    type: tweets
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required for remove")
}

func TestParse_SeedAndResetNeedNothing(t *testing.T) {
	content := `
name: test
description: "Bare seed and reset"
steps:
  - op: seed
  - op: reset
    confirm: true
`
	s, err := Parse([]byte(content))
	require.NoError(t, err)
	require.Len(t, s.Steps, 2)
	assert.True(t, s.Steps[1].Confirm)
}

func TestParse_UnknownFieldsRejected(t *testing.T) {
	content := `
name: test
description: "Typo in field name"
stepz:
  - op: seed
`
	_, err := Parse([]byte(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stepz")
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")

	content := `
name: from_file
description: "Loaded from disk"
steps:
  - op: seed
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_file", s.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/script.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read script file")
}
