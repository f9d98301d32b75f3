package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepN runs n steps and fails the test on any error.
func stepN(t *testing.T, st *State, p Program, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, st.Step(p), "step %d", i+1)
	}
}

func TestStep_InitialState(t *testing.T) {
	st := NewState([]byte{1, 2})
	assert.Equal(t, Cursor(0), st.Cursor())
	assert.Equal(t, 0, st.Consumed())
	assert.Empty(t, st.Output())
	assert.Equal(t, 0, st.Depth())
	assert.Equal(t, Cell(0), st.Tape().Value())
}

func TestStep_Arithmetic(t *testing.T) {
	p := MustParse("++-")
	st := NewState(nil)

	stepN(t, st, p, 2)
	assert.Equal(t, Cell(2), st.Tape().Value())
	assert.Equal(t, Cursor(2), st.Cursor())

	stepN(t, st, p, 1)
	assert.Equal(t, Cell(1), st.Tape().Value())
}

func TestStep_DecrementWraps(t *testing.T) {
	p := MustParse("-")
	st := NewState(nil)
	stepN(t, st, p, 1)
	assert.Equal(t, Cell(255), st.Tape().Value())
}

func TestStep_Movement(t *testing.T) {
	p := MustParse("+>++<")
	st := NewState(nil)
	stepN(t, st, p, 5)

	cells, ptr := st.Tape().Snapshot()
	assert.Equal(t, []Cell{1, 2}, cells)
	assert.Equal(t, 0, ptr)
}

func TestStep_NoOpAdvances(t *testing.T) {
	p := MustParse("x\n")
	st := NewState([]byte{9})
	stepN(t, st, p, 2)

	assert.True(t, st.Cursor().Done(p))
	assert.Equal(t, 0, st.Consumed())
	assert.Empty(t, st.Output())
	assert.Equal(t, Cell(0), st.Tape().Value())
}

func TestStep_WriteAppends(t *testing.T) {
	p := MustParse("+.+.")
	st := NewState(nil)
	stepN(t, st, p, 4)
	assert.Equal(t, []byte{1, 2}, st.Output())
}

func TestStep_ReadConsumesInOrder(t *testing.T) {
	p := MustParse(",,")
	st := NewState([]byte{7, 8})

	stepN(t, st, p, 1)
	assert.Equal(t, Cell(7), st.Tape().Value())
	assert.Equal(t, 1, st.Consumed())

	stepN(t, st, p, 1)
	assert.Equal(t, Cell(8), st.Tape().Value())
	assert.Equal(t, 2, st.Consumed())
}

func TestStep_ReadExhausted(t *testing.T) {
	p := MustParse("+,")
	st := NewState(nil)
	stepN(t, st, p, 1)

	err := st.Step(p)
	require.Error(t, err)
	assert.True(t, IsInputExhausted(err))

	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Offset)

	assert.Equal(t, Cursor(1), st.Cursor(), "failed step leaves the state untouched")
	assert.Equal(t, Cell(1), st.Tape().Value())
}

func TestStep_LoopBeginEntersOnNonzero(t *testing.T) {
	p := MustParse("+[-]")
	st := NewState(nil)
	stepN(t, st, p, 2)

	assert.Equal(t, Cursor(2), st.Cursor())
	assert.Equal(t, 1, st.Depth())
}

func TestStep_LoopBeginSkipsOnZero(t *testing.T) {
	p := MustParse("[+[.]-].")
	st := NewState(nil)
	stepN(t, st, p, 1)

	assert.Equal(t, Cursor(7), st.Cursor())
	assert.Equal(t, 0, st.Depth(), "skipping pushes nothing")
	assert.Equal(t, Cell(0), st.Tape().Value(), "body must not execute")
}

func TestStep_LoopEndRepeatsWithoutPop(t *testing.T) {
	p := MustParse("++[-]")
	st := NewState(nil)
	stepN(t, st, p, 4) // + + [ -

	stepN(t, st, p, 1) // ] with cell 1
	assert.Equal(t, Cursor(3), st.Cursor(), "jumps to just after [")
	assert.Equal(t, 1, st.Depth())

	stepN(t, st, p, 2) // - ] with cell 0
	assert.True(t, st.Cursor().Done(p))
	assert.Equal(t, 0, st.Depth())
}

func TestStep_LoopEndUnmatched(t *testing.T) {
	p := MustParse("+]")
	st := NewState(nil)
	stepN(t, st, p, 1)

	err := st.Step(p)
	require.Error(t, err)
	assert.True(t, IsUnmatchedLoopEnd(err))
	assert.Equal(t, Cursor(1), st.Cursor())
}

func TestStep_LoopEndUnmatchedEvenOnZero(t *testing.T) {
	p := MustParse("]")
	st := NewState(nil)
	assert.True(t, IsUnmatchedLoopEnd(st.Step(p)))
}

func TestStep_LoopBeginUnmatchedOnZero(t *testing.T) {
	p := MustParse("[+")
	st := NewState(nil)
	err := st.Step(p)
	assert.True(t, IsUnmatchedLoopBegin(err))
	assert.Equal(t, Cursor(0), st.Cursor())
}

func TestStep_ExhaustedCursorIsNoOp(t *testing.T) {
	p := Program{}
	st := NewState([]byte{1})
	require.NoError(t, st.Step(p))
	assert.Equal(t, Cursor(0), st.Cursor())
	assert.Equal(t, 0, st.Consumed())
}
