package odds

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type runtimeSource struct{}

func (runtimeSource) Float64() float64 { return rand.Float64() }

// DefaultRNG draws from the runtime's randomly seeded generator and is safe
// for concurrent use.
func DefaultRNG() RandomSource { return runtimeSource{} }

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRNG returns a source that replays the same sequence for the same
// seed. Concurrent simulations may share it.
func NewSeededRNG(seed uint64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
