package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapevm/internal/engine"
)

func strPtr(s string) *string { return &s }

func TestRun_ScenarioFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_EmptyProgram(t *testing.T) {
	result, err := Run(&Scenario{
		Name:   "empty",
		Input:  "ignored",
		Expect: Expect{Output: strPtr("")},
		Assertions: []Assertion{
			{Type: AssertSteps, Count: 0},
			{Type: AssertInputConsumed, Count: 0},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_OutputMismatch(t *testing.T) {
	result, err := Run(&Scenario{
		Name:    "wrong",
		Program: "+.",
		Expect:  Expect{OutputBytes: []int{2}},
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expect.output")
}

func TestRun_UnexpectedError(t *testing.T) {
	result, err := Run(&Scenario{Name: "bad", Program: "]"})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "UNMATCHED_LOOP_END", result.ErrorCode)
	assert.Contains(t, result.Errors[0], "Expected: success")
}

func TestRun_StrictRejectsComment(t *testing.T) {
	result, err := Run(&Scenario{
		Name:    "strict",
		Program: "+ comment",
		Strict:  true,
		Expect:  Expect{Error: string(engine.ErrCodeUnknownInstruction)},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, int64(0), result.Steps, "strict rejection happens before any step")
}

func TestRun_MaxSteps(t *testing.T) {
	result, err := Run(&Scenario{
		Name:     "spin",
		Program:  "+[]",
		MaxSteps: 50,
		Expect:   Expect{Error: "STEPS_EXCEEDED"},
		Assertions: []Assertion{
			{Type: AssertSteps, Count: 50},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_TraceTruncated(t *testing.T) {
	result, err := Run(&Scenario{
		Name:     "long",
		Program:  "+[]",
		MaxSteps: MaxTraceEvents + 10,
		Expect:   Expect{Error: "STEPS_EXCEEDED"},
	})
	require.NoError(t, err)
	assert.Len(t, result.Trace, MaxTraceEvents)
	assert.True(t, result.TraceTruncated)
	assert.Equal(t, int64(MaxTraceEvents+10), result.Steps)
}

func TestRun_CopyLoop(t *testing.T) {
	result, err := Run(&Scenario{
		Name:    "copy",
		Program: "+++++[->+<]",
		Assertions: []Assertion{
			{Type: AssertTraceCount, Op: "]", Count: 5},
			{Type: AssertFinalCell, At: 0, Value: 0},
			{Type: AssertFinalCell, At: 1, Value: 5},
			{Type: AssertFinalCell, At: 40, Value: 0},
			{Type: AssertMaxDepth, Count: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_MissingProgramFile(t *testing.T) {
	_, err := Run(&Scenario{Name: "x", ProgramFile: filepath.Join(t.TempDir(), "gone.bf")})
	assert.Error(t, err)
}

func TestRun_InputConsumedOnFailure(t *testing.T) {
	result, err := Run(&Scenario{
		Name:    "read_then_fail",
		Program: ",.]",
		Input:   "ab",
		Expect:  Expect{Error: string(engine.ErrCodeUnmatchedLoopEnd)},
		Assertions: []Assertion{
			{Type: AssertInputConsumed, Count: 1},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.InputConsumed)
}
