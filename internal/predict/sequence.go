package predict

import "sync/atomic"

// Sequence numbers prediction requests so that a response arriving after
// a newer request was issued can be recognised and dropped.
type Sequence struct {
	n atomic.Uint64
}

// Next issues a new request number; it becomes the current one.
func (s *Sequence) Next() uint64 { return s.n.Add(1) }

// Invalidate makes every issued number stale without starting a request.
func (s *Sequence) Invalidate() { s.n.Add(1) }

// IsCurrent reports whether n is the most recently issued number.
func (s *Sequence) IsCurrent(n uint64) bool { return s.n.Load() == n }
