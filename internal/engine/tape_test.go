package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_ZeroValue(t *testing.T) {
	var tape Tape
	assert.Equal(t, Cell(0), tape.Value())

	cells, ptr := tape.Snapshot()
	assert.Equal(t, []Cell{0}, cells)
	assert.Equal(t, 0, ptr)
}

func TestTape_SetValueKeepsNeighbours(t *testing.T) {
	tape := NewTape()
	tape.SetValue(1)
	tape.MoveRight()
	tape.SetValue(2)
	tape.MoveLeft()

	tape.SetValue(9)

	cells, ptr := tape.Snapshot()
	assert.Equal(t, []Cell{9, 2}, cells)
	assert.Equal(t, 0, ptr)
}

func TestTape_MoveMaterializesZeros(t *testing.T) {
	tape := NewTape()

	for i := 0; i < 100; i++ {
		tape.MoveLeft()
		assert.Equal(t, Cell(0), tape.Value(), "fresh cell %d must be zero", i)
	}
	for i := 0; i < 200; i++ {
		tape.MoveRight()
		assert.Equal(t, Cell(0), tape.Value())
	}

	cells, ptr := tape.Snapshot()
	assert.Len(t, cells, 201)
	assert.Equal(t, 200, ptr)
}

func TestTape_RoundTripLeftRight(t *testing.T) {
	tape := NewTape()
	tape.SetValue(5)
	tape.MoveRight()
	tape.SetValue(6)
	tape.MoveLeft()

	tape.MoveLeft()
	tape.MoveRight()

	assert.Equal(t, Cell(5), tape.Value())
	tape.MoveRight()
	assert.Equal(t, Cell(6), tape.Value(), "right neighbour survives the round trip")
}

func TestTape_RoundTripRightLeft(t *testing.T) {
	tape := NewTape()
	tape.SetValue(3)
	tape.MoveLeft()
	tape.SetValue(4)
	tape.MoveRight()

	tape.MoveRight()
	tape.MoveLeft()

	assert.Equal(t, Cell(3), tape.Value())
	tape.MoveLeft()
	assert.Equal(t, Cell(4), tape.Value(), "left neighbour survives the round trip")
}

func TestTape_SnapshotOrder(t *testing.T) {
	tape := NewTape()
	for _, v := range []Cell{1, 2, 3} {
		tape.SetValue(v)
		tape.MoveRight()
	}
	tape.MoveLeft()
	tape.MoveLeft()

	cells, ptr := tape.Snapshot()
	assert.Equal(t, []Cell{1, 2, 3, 0}, cells)
	assert.Equal(t, 1, ptr)
	assert.Equal(t, Cell(2), tape.Value())
}
