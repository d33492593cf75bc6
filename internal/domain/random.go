package domain

import "golang.org/x/exp/rand"

// RandomSource yields uniform draws in [0, 1). Every probabilistic branch of
// combat reads from one injected source so a seed fixes the whole game.
type RandomSource interface {
	Float64() float64
}

// NewRandSource returns a PCG-backed source seeded with seed.
func NewRandSource(seed uint64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

// SequenceSource replays a fixed list of draws, then keeps returning the
// last one. An empty sequence always draws 0.
type SequenceSource struct {
	draws []float64
	next  int
}

// NewSequenceSource returns a source that yields draws in order.
func NewSequenceSource(draws ...float64) *SequenceSource {
	return &SequenceSource{draws: draws}
}

func (s *SequenceSource) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	if s.next >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	v := s.draws[s.next]
	s.next++
	return v
}

// Used reports how many draws have been consumed.
func (s *SequenceSource) Used() int { return s.next }
