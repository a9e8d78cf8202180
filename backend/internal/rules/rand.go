package rules

import (
	"context"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

// RollD6Rule demonstrates RNG determinism: the same engine seed, driven
// through the same command sequence, always produces the same roll.
type RollD6Rule struct{ kernel.BaseRule }

// NewRollD6Rule constructs the sole rule behind the "rand" command.
func NewRollD6Rule() *RollD6Rule {
	return &RollD6Rule{kernel.BaseRule{RuleName: "roll-d6", RulePriority: 0}}
}

func (r *RollD6Rule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *RollD6Rule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	roll, err := gctx.RNG().Roll("1d6")
	if err != nil {
		return kernel.RuleResult{}, err
	}
	gctx.Effects().Add("dice-rolled", cmd.ActorID, roll.Total)
	return kernel.NewSuccessResult("rolled 1d6", kernel.WithData(map[string]interface{}{"total": roll.Total})), nil
}

// RegisterRandCommand wires the "rand" command and its single rule.
func RegisterRandCommand(e *kernel.Engine) error {
	if err := e.RegisterRule(NewRollD6Rule()); err != nil {
		return err
	}
	return e.RegisterCommand(kernel.CommandBinding{Type: "rand", RequiredRules: []string{"roll-d6"}})
}
