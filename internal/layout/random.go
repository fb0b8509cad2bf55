package layout

import "math/rand"

// Source is a uniform [0, 1) random generator.
type Source interface {
	Float() float64
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() float64

// Float implements Source.
func (f SourceFunc) Float() float64 {
	return f()
}

// RNG is a deterministic pseudo-random number generator (xorshift64).
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &RNG{state: seed}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Sequence replays a fixed list of values, cycling when exhausted.
// An empty Sequence always returns 0.
type Sequence struct {
	values []float64
	pos    int
	draws  int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float implements Source.
func (s *Sequence) Float() float64 {
	s.draws++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.draws
}

// MathRand wraps a math/rand generator.
type MathRand struct {
	r *rand.Rand
}

// NewMathRand creates a Source backed by math/rand seeded with seed.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{r: rand.New(rand.NewSource(seed))}
}

// Float implements Source.
func (m *MathRand) Float() float64 {
	return m.r.Float64()
}
