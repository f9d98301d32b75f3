package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Echo(t *testing.T) {
	result, err := RunWithGolden(t, &Scenario{
		Name:    "echo",
		Program: ",.",
		Input:   "A",
		Expect:  Expect{Output: strPtr("A")},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRunWithGolden_LoopSkip(t *testing.T) {
	_, err := RunWithGolden(t, &Scenario{
		Name:    "loop_skip",
		Program: "[.]+",
	})
	require.NoError(t, err)
}

func TestRunWithGolden_RuntimeError(t *testing.T) {
	result, err := RunWithGolden(t, &Scenario{
		Name:    "unmatched_end",
		Program: "+.]",
		Expect:  Expect{Error: "UNMATCHED_LOOP_END", OutputBytes: []int{1}},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_Deterministic(t *testing.T) {
	s := &Scenario{Name: "twice", Program: "++[>+<-]>."}

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := Snapshot(s.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(s.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSnapshot_Truncated(t *testing.T) {
	result := NewResult()
	result.TraceTruncated = true
	result.ErrorCode = "STEPS_EXCEEDED"

	data, err := Snapshot("t", result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"trace_truncated":true`)
	assert.NotContains(t, string(data), `"cells"`)
}
