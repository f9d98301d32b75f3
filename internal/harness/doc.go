// Package harness provides conformance testing for tapevm programs.
//
// The harness loads scenarios, executes each program through the engine with
// a recording tracer, and validates the outcome against expectations and
// assertions. Traces can be pinned with golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	program: ",[.,]"          # or program_file: relative/path.bf
//	input: "abc"              # or input_bytes: [97, 98, 99]
//	strict: false
//	max_steps: 0
//	expect:
//	  output: "abc"           # or output_bytes: [97, 98, 99]
//	  error: ""               # e.g. INPUT_EXHAUSTED
//	assertions:
//	  - type: steps
//	    count: 11
//	  - type: trace_count
//	    op: "."
//	    count: 3
//	  - type: final_cell
//	    at: 0
//	    value: 0
//
// Unknown fields are rejected so typos fail loudly.
//
// # Golden Files
//
// RunWithGolden snapshots the run (output, error, steps, tape and the first
// MaxTraceEvents steps) as canonical JSON under testdata/golden. Regenerate
// with:
//
//	go test ./internal/harness -update
package harness
