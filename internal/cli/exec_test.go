package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tapevm/internal/engine"
)

func TestExecuteProgram_Success(t *testing.T) {
	x, err := executeProgram([]byte(helloWorld), nil, false, 0, false)
	require.NoError(t, err)
	assert.Nil(t, x.Err)
	assert.Equal(t, "Hello World!\n", string(x.Output))
	assert.Equal(t, "", x.ErrorCode())
	assert.Equal(t, -1, x.ErrorOffset())
}

func TestExecuteProgram_CountsConsumedInput(t *testing.T) {
	x, err := executeProgram([]byte(",.,"), []byte("abc"), false, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 2, x.InputConsumed)
	assert.Equal(t, int64(3), x.Steps)
}

func TestExecuteProgram_Failures(t *testing.T) {
	x, err := executeProgram([]byte("+.,"), nil, false, 0, false)
	require.NoError(t, err, "runtime errors are outcomes")
	require.NotNil(t, x.Err)
	assert.Equal(t, "INPUT_EXHAUSTED", x.ErrorCode())
	assert.Equal(t, 2, x.ErrorOffset())
	assert.Equal(t, []byte{1}, x.Output)
	assert.Equal(t, int64(2), x.Steps)

	x, err = executeProgram([]byte("+x"), nil, true, 0, false)
	require.NoError(t, err)
	assert.Equal(t, string(engine.ErrCodeUnknownInstruction), x.ErrorCode())
	assert.Equal(t, 1, x.ErrorOffset())
	assert.Equal(t, int64(0), x.Steps)
}

func TestExecution_ResultHashIsDeterministic(t *testing.T) {
	run := func(input string) string {
		x, err := executeProgram([]byte(",[.,]"), []byte(input), false, 1000, false)
		require.NoError(t, err)
		h, err := x.ResultHash()
		require.NoError(t, err)
		return h
	}

	assert.Equal(t, run("abc"), run("abc"))
	assert.NotEqual(t, run("abc"), run("abd"))
}

func TestExecuteProgram_InputConsumedMatchesEngine(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input string
	}{
		{"success", ",.,.", "abc"},
		{"input exhausted", ",,,", "ab"},
		{"unmatched end", ",.]", "xy"},
		{"steps exceeded", ",+[]", "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := executeProgram([]byte(tt.src), []byte(tt.input), false, 50, false)
			require.NoError(t, err)

			res, err := engine.Execute([]byte(tt.src), []byte(tt.input), engine.WithMaxSteps(50))
			if err != nil {
				var re *engine.RuntimeError
				require.ErrorAs(t, err, &re)
				assert.Equal(t, re.Consumed, x.InputConsumed)
				return
			}
			assert.Equal(t, res.InputConsumed, x.InputConsumed)
		})
	}
}
