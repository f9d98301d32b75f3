package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tapevm/internal/ir"
)

// Snapshot renders a result as canonical JSON for golden comparison.
//
// The snapshot holds the output (hex), error code, step count, bytes read,
// the recorded trace and, for completed runs, the final tape.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	trace := make(ir.IRArray, len(result.Trace))
	for i, ev := range result.Trace {
		trace[i] = ir.IRObject{
			"seq":    ir.IRInt(ev.Seq),
			"offset": ir.IRInt(ev.Offset),
			"op":     ir.IRString(ev.Op),
			"cell":   ir.IRInt(ev.Cell),
			"depth":  ir.IRInt(ev.Depth),
		}
	}

	snapshot := ir.IRObject{
		"scenario_name":  ir.IRString(scenarioName),
		"output":         ir.HexBytes(result.Output),
		"steps":          ir.IRInt(result.Steps),
		"input_consumed": ir.IRInt(result.InputConsumed),
		"trace":          trace,
	}
	if result.ErrorCode != "" {
		snapshot["error_code"] = ir.IRString(result.ErrorCode)
	} else {
		snapshot["cells"] = ir.IntArray(result.Cells)
		snapshot["pointer"] = ir.IRInt(result.Pointer)
	}
	if result.TraceTruncated {
		snapshot["trace_truncated"] = ir.IRBool(true)
	}

	return ir.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. A snapshot mismatch fails the
// test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
