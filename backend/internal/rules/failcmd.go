package rules

import (
	"context"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

// FailFirstRule always fails, demonstrating that a staged effect never
// commits once any rule in the chain rejects the command.
type FailFirstRule struct{ kernel.BaseRule }

func NewFailFirstRule() *FailFirstRule {
	return &FailFirstRule{kernel.BaseRule{RuleName: "fail-first", RulePriority: 0}}
}

func (r *FailFirstRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *FailFirstRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	gctx.Effects().Add("attempted", cmd.ActorID, nil)
	return kernel.NewFailureResult("fail-cmd always rejects"), nil
}

// AddEffectRule would stage a second effect if reached; it never runs
// because FailFirstRule halts the chain first.
type AddEffectRule struct{ kernel.BaseRule }

func NewAddEffectRule() *AddEffectRule {
	return &AddEffectRule{kernel.BaseRule{RuleName: "add-effect", RulePriority: 1, RulePrerequisites: []string{"fail-first"}}}
}

func (r *AddEffectRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *AddEffectRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	gctx.Effects().Add("unreachable", cmd.ActorID, nil)
	return kernel.NewSuccessResult("unreachable"), nil
}

// RegisterFailCmdCommand wires the "fail-cmd" command and its two-rule
// chain.
func RegisterFailCmdCommand(e *kernel.Engine) error {
	if err := e.RegisterRule(NewFailFirstRule()); err != nil {
		return err
	}
	if err := e.RegisterRule(NewAddEffectRule()); err != nil {
		return err
	}
	return e.RegisterCommand(kernel.CommandBinding{Type: "fail-cmd", RequiredRules: []string{"fail-first", "add-effect"}})
}
