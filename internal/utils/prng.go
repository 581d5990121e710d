// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// PRNGService wraps a seeded generator so every random decision in a session
// can be replayed from the logged seed.
type PRNGService struct {
	seed int64
	rng  *rand.Rand
}

// NewPRNGService creates a generator with the given seed.
// A zero seed is replaced by the current time.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the effective seed.
func (s *PRNGService) Seed() int64 {
	return s.seed
}

// Intn returns an int in [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 returns a float in [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range returns a float in [min, max).
func (s *PRNGService) Range(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Spread returns a float in [-half, half).
func (s *PRNGService) Spread(half float64) float64 {
	return (s.rng.Float64() - 0.5) * 2 * half
}

// Chance reports true with probability p.
func (s *PRNGService) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Pick chooses k distinct indices out of [0, n) without replacement.
func (s *PRNGService) Pick(k, n int) []int {
	if k > n {
		k = n
	}
	perm := s.rng.Perm(n)
	return perm[:k]
}

// Reseed restarts the generator from seed, with the same zero rule as
// NewPRNGService.
func (s *PRNGService) Reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}
