package kernel

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"sync"
)

// RollResult is the outcome of parsing and evaluating dice notation.
type RollResult struct {
	Dice     []int
	Modifier int
	Total    int
}

// RNG is the sole non-determinism gate in the kernel. Every random draw
// anywhere in the system — rule bodies included — must flow through an
// RNG obtained from the GameContext; reaching for a host-language global
// random source inside a rule is a correctness bug, not a style issue.
type RNG interface {
	// Int returns a uniform random integer in the inclusive range [lo, hi].
	Int(lo, hi int) int
	// Float returns a uniform random float64 in [0, 1).
	Float() float64
	// Roll parses "NdM+K" / "NdM-K" / "NdM" notation and returns the sum of
	// N rolls of an M-sided die plus the modifier K.
	Roll(notation string) (RollResult, error)
}

var diceNotationPattern = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

// seededRNG is a deterministic pseudo-random source. Two seededRNGs
// constructed with the same seed, driven through the same sequence of
// draws, produce byte-identical output. RNG state belongs to the engine,
// not to any single command — draws advance it monotonically for the
// lifetime of the engine.
type seededRNG struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRNG constructs a seeded RNG. Identical seeds and identical draw
// sequences always produce identical results.
func NewRNG(seed int64) RNG {
	return &seededRNG{src: rand.New(rand.NewSource(seed))}
}

func (r *seededRNG) Int(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.src.Intn(hi-lo+1)
}

func (r *seededRNG) Float() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *seededRNG) Roll(notation string) (RollResult, error) {
	matches := diceNotationPattern.FindStringSubmatch(notation)
	if matches == nil {
		return RollResult{}, fmt.Errorf("kernel: invalid dice notation %q", notation)
	}

	count, _ := strconv.Atoi(matches[1])
	sides, _ := strconv.Atoi(matches[2])
	if count < 1 {
		return RollResult{}, fmt.Errorf("kernel: dice count must be at least 1 in %q", notation)
	}
	if sides < 2 {
		return RollResult{}, fmt.Errorf("kernel: dice must have at least 2 sides in %q", notation)
	}

	modifier := 0
	if matches[3] != "" {
		modifier, _ = strconv.Atoi(matches[3])
	}

	result := RollResult{Dice: make([]int, count), Modifier: modifier, Total: modifier}
	for i := 0; i < count; i++ {
		roll := r.Int(1, sides)
		result.Dice[i] = roll
		result.Total += roll
	}
	return result, nil
}
