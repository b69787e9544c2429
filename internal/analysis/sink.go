package analysis

import "sync"

// Sink is an append-only diagnostic collector. Safe for concurrent append
// when the host runs compilation units in parallel.
type Sink struct {
	mu    sync.Mutex
	diags []Diagnostic
}

func NewSink() *Sink {
	return &Sink{}
}

// Append adds one unit's diagnostics to the sink.
func (s *Sink) Append(diags ...Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, diags...)
}

// Diagnostics returns a sorted copy of everything collected so far, in the
// same rule-then-position order Analyze promises per unit. Sorting here makes
// merged multi-unit results deterministic regardless of goroutine scheduling.
func (s *Sink) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sortDiagnostics(out)
	return out
}

// Len reports the number of collected diagnostics.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.diags)
}
