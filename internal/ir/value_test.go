package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys_ASCII(t *testing.T) {
	obj := IRObject{"steps": IRInt(1), "output": IRString(""), "input": IRString("")}
	assert.Equal(t, []string{"input", "output", "steps"}, obj.SortedKeys())
}

func TestSortedKeys_UTF16Order(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D..., which sort before U+FF61.
	obj := IRObject{"\uff61": IRInt(1), "\U0001F600": IRInt(2)}
	assert.Equal(t, []string{"\U0001F600", "\uff61"}, obj.SortedKeys())
}

func TestHexBytes(t *testing.T) {
	assert.Equal(t, IRString("00ff40"), HexBytes([]byte{0, 255, 64}))
	assert.Equal(t, IRString(""), HexBytes(nil))
}

func TestIntArray(t *testing.T) {
	assert.Equal(t, IRArray{IRInt(1), IRInt(255)}, IntArray([]uint8{1, 255}))
}
