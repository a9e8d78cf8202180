// Package rules ships a small set of illustrative OSRIC-flavored commands
// and rule bodies. They exist to exercise the kernel's contract end to
// end — they are not a ruleset implementation, and nothing here is
// authoritative game data.
package rules

import "github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"

// Character is the minimal entity shape the example rules operate on.
type Character struct {
	EntityID  kernel.EntityID
	Name      string
	Race      string
	Class     string
	Abilities map[string]int
	Inspired  bool
}

func (c *Character) ID() kernel.EntityID { return c.EntityID }
