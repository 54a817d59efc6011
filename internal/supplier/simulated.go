package supplier

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/jonathan/renovation-quoter/internal/mathutil"
)

// DefaultFluctuation is the maximum relative deviation of a simulated price
const DefaultFluctuation = 0.10

// Simulated returns the base price moved by a uniform random factor in
// [-Fluctuation, +Fluctuation], rounded to cents
type Simulated struct {
	Fluctuation float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated supplier with the default fluctuation
func NewSimulated() *Simulated {
	return &Simulated{Fluctuation: DefaultFluctuation}
}

// NewSeededSimulated creates a simulated supplier with a deterministic source
func NewSeededSimulated(seed uint64) *Simulated {
	return &Simulated{
		Fluctuation: DefaultFluctuation,
		rng:         rand.New(rand.NewPCG(seed, seed)),
	}
}

// Fetch implements PriceFetcher
func (s *Simulated) Fetch(ctx context.Context, _ string, basePrice float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	factor := 1 + (s.uniform()*2-1)*s.Fluctuation
	return mathutil.Round2(basePrice * factor), nil
}

func (s *Simulated) uniform() float64 {
	if s.rng == nil {
		return rand.Float64()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
