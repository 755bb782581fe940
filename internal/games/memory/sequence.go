package memory

import "sync/atomic"

// Sequence issues strictly increasing tile identifiers.
// A session owns one and hands it to every board it builds, so ids are
// never reused across boards of the same session.
type Sequence struct {
	next atomic.Int64
}

// NewSequence creates a sequence whose first Next returns origin.
func NewSequence(origin int) *Sequence {
	s := &Sequence{}
	s.next.Store(int64(origin))
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() int {
	return int(s.next.Add(1) - 1)
}
