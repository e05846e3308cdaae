// Package script provides scripted sessions against the shoebox store.
//
// A script drives a fresh store through a sequence of operations and
// checks each operation's outcome, turning store behavior into
// executable, replayable demonstrations.
//
// # Script Format
//
// Scripts are defined in YAML files with the following structure:
//
//	name: script_name
//	description: "What this script demonstrates"
//	run_token: "test-run-0001"
//	steps:
//	  - op: insert
//	    type: tweets
//	    element: { message: "hello world" }
//	    expect:
//	      result: { id: 101 }
//	  - op: select
//	    type: tweets
//	    id: 101
//	  - op: remove
//	    type: tweets
//	    id: 999
//	    expect:
//	      error: NOT_FOUND
//
// # Operations
//
// The following operations are supported:
//
//   - select: read one record (numeric id) or a whole collection
//   - insert: add a record; the store assigns its id
//   - replace: swap a record in place, id must match
//   - remove: delete a record and close the gap
//   - seed: load the default data set
//   - reset: wipe memory (requires confirm: true)
//
// # Expectations
//
// Each step may carry an expect clause: an error code the operation
// must fail with, missing for selects that should find nothing, a
// result subset (only listed fields are compared), and a count for
// list selects. Steps without a clause only fail on unexpected store
// errors.
//
// # Deterministic Runs
//
// Every run starts from a fresh store, so a script with a fixed
// run_token produces byte-identical canonical output. That makes runs
// comparable against golden files.
package script
