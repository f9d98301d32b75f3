package engine

// Cell is a single byte of tape memory.
// Arithmetic wraps modulo 256: Inc on 255 yields 0, Dec on 0 yields 255.
type Cell byte

// Inc returns the cell incremented by one, wrapping on overflow.
func (c Cell) Inc() Cell {
	return c + 1
}

// Dec returns the cell decremented by one, wrapping on underflow.
func (c Cell) Dec() Cell {
	return c - 1
}

// IsZero reports whether the cell holds 0.
// Loop instructions branch on this.
func (c Cell) IsZero() bool {
	return c == 0
}
