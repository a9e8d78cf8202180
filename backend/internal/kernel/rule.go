package kernel

import "context"

// Rule is a stateless unit of game logic addressed by name. Rules own no
// state between invocations: everything a rule needs either lives on the
// GameContext (entities, temporary workspace) or is passed in per call.
//
// A rule may read from and write to the entity store and the temporary
// workspace, stage effects through the context's effect recorder, and
// draw from the context's RNG. A rule may not spawn goroutines, block on
// external I/O, or retain ctx/cmd past the call that handed them in.
type Rule interface {
	// Name is this rule's unique identifier in the registry.
	Name() string
	// Priority is the ordering tie-breaker; lower runs earlier.
	Priority() int
	// Prerequisites lists rule names that must be scheduled before this
	// one within the same chain.
	Prerequisites() []string
	// CanApply is a cheap, side-effect-free predicate the engine uses to
	// filter the ordered rule set before execution.
	CanApply(gctx *GameContext, cmd *Command) bool
	// Execute runs the rule body. A returned error represents a host
	// exception (surfaced as RULE_EXCEPTION); it is distinct from a
	// RuleResult carrying Kind == ResultFailure, which is an expected
	// domain rejection.
	Execute(ctx context.Context, gctx *GameContext, cmd *Command) (RuleResult, error)
}

// BaseRule provides the bookkeeping fields most rules share (name,
// priority, prerequisites) so concrete rules only need to implement
// CanApply and Execute. Embed it and override as needed.
type BaseRule struct {
	RuleName          string
	RulePriority      int
	RulePrerequisites []string
}

func (b BaseRule) Name() string             { return b.RuleName }
func (b BaseRule) Priority() int            { return b.RulePriority }
func (b BaseRule) Prerequisites() []string  { return b.RulePrerequisites }
