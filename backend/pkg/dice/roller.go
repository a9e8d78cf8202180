// Package dice is a thin convenience wrapper over kernel.RNG for rule
// bodies that want advantage/disadvantage rolls without hand-rolling the
// "roll twice, keep one" pattern themselves. It owns no random source of
// its own — every draw flows through the RNG handed to NewRoller, keeping
// the kernel's "one RNG" invariant intact.
package dice

import "github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"

// Roller rolls dice notation through a caller-supplied RNG.
type Roller struct {
	rng kernel.RNG
}

// NewRoller wraps rng. Callers typically pass gctx.RNG() from inside a
// rule body.
func NewRoller(rng kernel.RNG) *Roller {
	return &Roller{rng: rng}
}

// Roll parses and evaluates dice notation (e.g. "2d6+3").
func (r *Roller) Roll(notation string) (kernel.RollResult, error) {
	return r.rng.Roll(notation)
}

// RollAdvantage rolls 1d20 twice and keeps the higher result.
func (r *Roller) RollAdvantage() (kernel.RollResult, error) {
	first, err := r.rng.Roll("1d20")
	if err != nil {
		return kernel.RollResult{}, err
	}
	second, err := r.rng.Roll("1d20")
	if err != nil {
		return kernel.RollResult{}, err
	}
	if first.Total >= second.Total {
		return first, nil
	}
	return second, nil
}

// RollDisadvantage rolls 1d20 twice and keeps the lower result.
func (r *Roller) RollDisadvantage() (kernel.RollResult, error) {
	first, err := r.rng.Roll("1d20")
	if err != nil {
		return kernel.RollResult{}, err
	}
	second, err := r.rng.Roll("1d20")
	if err != nil {
		return kernel.RollResult{}, err
	}
	if first.Total <= second.Total {
		return first, nil
	}
	return second, nil
}
