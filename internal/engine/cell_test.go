package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_IncWraps(t *testing.T) {
	assert.Equal(t, Cell(0), Cell(255).Inc())
	assert.Equal(t, Cell(1), Cell(0).Inc())
}

func TestCell_DecWraps(t *testing.T) {
	assert.Equal(t, Cell(255), Cell(0).Dec())
	assert.Equal(t, Cell(127), Cell(128).Dec())
}

func TestCell_FullCycle(t *testing.T) {
	c := Cell(7)
	for i := 0; i < 256; i++ {
		c = c.Inc()
	}
	assert.Equal(t, Cell(7), c, "256 increments return to the start")
}

func TestCell_IsZero(t *testing.T) {
	assert.True(t, Cell(0).IsZero())
	assert.False(t, Cell(1).IsZero())
	assert.True(t, Cell(255).Inc().IsZero())
}
