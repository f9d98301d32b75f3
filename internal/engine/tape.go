package engine

// Tape is the doubly-infinite memory model: one focused cell plus the
// materialized cells to its left and right.
//
// left and right are stacks whose tops (last elements) are the cells
// adjacent to the focus. Past the materialized prefix both directions are
// conceptually infinite runs of zero cells, so movement never fails: moving
// off the end materializes a fresh zero.
//
// Memory grows with the maximum excursion from the start position, not with
// program length.
//
// The zero value is a valid tape focused on a single zero cell.
type Tape struct {
	focus Cell
	left  []Cell
	right []Cell
}

// NewTape creates a tape focused on a single zero cell.
func NewTape() *Tape {
	return &Tape{}
}

// Value returns the focused cell.
func (t *Tape) Value() Cell {
	return t.focus
}

// SetValue replaces the focused cell. Neighbouring cells are unchanged.
func (t *Tape) SetValue(c Cell) {
	t.focus = c
}

// MoveLeft shifts focus one cell to the left.
// The old focus becomes the nearest cell on the right.
func (t *Tape) MoveLeft() {
	t.right = append(t.right, t.focus)
	t.focus, t.left = pop(t.left)
}

// MoveRight shifts focus one cell to the right.
// The old focus becomes the nearest cell on the left.
func (t *Tape) MoveRight() {
	t.left = append(t.left, t.focus)
	t.focus, t.right = pop(t.right)
}

// pop removes the top of a cell stack, yielding a zero cell when the stack
// is empty.
func pop(s []Cell) (Cell, []Cell) {
	if len(s) == 0 {
		return 0, s
	}
	return s[len(s)-1], s[:len(s)-1]
}

// Snapshot returns the materialized cells in left-to-right order together
// with the index of the focused cell within them.
// The returned slice is a copy; mutating it does not affect the tape.
func (t *Tape) Snapshot() (cells []Cell, pointer int) {
	cells = make([]Cell, 0, len(t.left)+1+len(t.right))
	cells = append(cells, t.left...)
	cells = append(cells, t.focus)
	for i := len(t.right) - 1; i >= 0; i-- {
		cells = append(cells, t.right[i])
	}
	return cells, len(t.left)
}
