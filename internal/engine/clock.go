package engine

// Clock stamps completed steps with a logical sequence number.
//
// Seq 1 is the first step of a run. Traces are ordered by seq, never by wall
// time, so replaying the same program and input yields identical stamps.
// A Clock belongs to one run and is not safe for concurrent use.
type Clock struct {
	seq int64
}

// NewClock returns a clock that has not stamped anything yet.
func NewClock() *Clock {
	return &Clock{}
}

// Tick stamps one completed step and returns its seq.
func (c *Clock) Tick() int64 {
	c.seq++
	return c.seq
}

// Now reports how many steps have been stamped.
func (c *Clock) Now() int64 {
	return c.seq
}
