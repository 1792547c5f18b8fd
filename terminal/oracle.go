package terminal

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// drawSpace is the number of distinct draws, covering [0, 100] inclusive.
const drawSpace = 101

// RandomSource supplies uniformly distributed integers in [0, n).
// *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// ConnectionOracle simulates backend reliability during PIN verification.
type ConnectionOracle struct {
	src RandomSource
}

// NewConnectionOracle creates an oracle drawing from src. A nil src uses a
// time-seeded PCG generator.
func NewConnectionOracle(src RandomSource) *ConnectionOracle {
	if src == nil {
		now := uint64(time.Now().UnixNano()) //nolint:gosec // seed only

		src = rand.New(rand.NewPCG(now, now>>1)) //nolint:gosec // simulation, not security
	}

	return &ConnectionOracle{src: src}
}

// NewSeededOracle creates an oracle whose draws are reproducible for a given seed.
func NewSeededOracle(seed uint64) *ConnectionOracle {
	return NewConnectionOracle(rand.New(rand.NewPCG(seed, seed))) //nolint:gosec // simulation, not security
}

// Succeeds draws a number in [0, 100] and reports whether it is at or above
// the failure threshold floor(failureProbability*100).
func (o *ConnectionOracle) Succeeds(failureProbability float64) bool {
	return o.draw() >= threshold(failureProbability)
}

func (o *ConnectionOracle) draw() int {
	return o.src.IntN(drawSpace)
}

// thresholdEpsilon absorbs binary rounding in p*100, so 0.29 maps to 29 rather than 28.
const thresholdEpsilon = 1e-9

func threshold(failureProbability float64) int {
	return int(math.Floor(failureProbability*100 + thresholdEpsilon)) //nolint:mnd // percentage space
}

// FixedSource replays a fixed sequence of draws, cycling when exhausted.
// It is meant for deterministic tests and scripted runs.
type FixedSource struct {
	mu    sync.Mutex
	draws []int
	next  int
}

// NewFixedSource creates a source that returns draws in order.
func NewFixedSource(draws ...int) *FixedSource {
	if len(draws) == 0 {
		draws = []int{0}
	}

	return &FixedSource{draws: draws}
}

// IntN returns the next draw, clamped to [0, n).
func (f *FixedSource) IntN(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := f.draws[f.next%len(f.draws)]
	f.next++

	switch {
	case v < 0:
		return 0
	case v >= n:
		return n - 1
	default:
		return v
	}
}

// AlwaysConnected returns an oracle that succeeds for every probability below 1.
// At probability 1 the threshold is 100 and the maximum draw still passes.
func AlwaysConnected() *ConnectionOracle {
	return NewConnectionOracle(NewFixedSource(drawSpace - 1))
}

// NeverConnected returns an oracle that fails for every probability of at least 0.01.
func NeverConnected() *ConnectionOracle {
	return NewConnectionOracle(NewFixedSource(0))
}
