package rules

import (
	"context"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

// StopperRule succeeds and halts the chain. LaterRule never runs, even
// though it is also required by the command.
type StopperRule struct{ kernel.BaseRule }

func NewStopperRule() *StopperRule {
	return &StopperRule{kernel.BaseRule{RuleName: "stopper", RulePriority: 0}}
}

func (r *StopperRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *StopperRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	gctx.Effects().Add("stopped", cmd.ActorID, nil)
	return kernel.NewSuccessResult("stopped before later rules", kernel.WithStopChain(), kernel.WithData(map[string]interface{}{"stopped": true})), nil
}

// LaterRule would run after StopperRule in registration order; StopChain
// on the prior result prevents that.
type LaterRule struct{ kernel.BaseRule }

func NewLaterRule() *LaterRule {
	return &LaterRule{kernel.BaseRule{RuleName: "later", RulePriority: 1, RulePrerequisites: []string{"stopper"}}}
}

func (r *LaterRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *LaterRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	gctx.SetTemporary("later-ran", true)
	return kernel.NewSuccessResult("later"), nil
}

// RegisterStopChainDemoCommand wires the "stop-chain-demo" command.
func RegisterStopChainDemoCommand(e *kernel.Engine) error {
	if err := e.RegisterRule(NewStopperRule()); err != nil {
		return err
	}
	if err := e.RegisterRule(NewLaterRule()); err != nil {
		return err
	}
	return e.RegisterCommand(kernel.CommandBinding{Type: "stop-chain-demo", RequiredRules: []string{"stopper", "later"}})
}
