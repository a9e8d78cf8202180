package rules

import (
	"context"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

// InspirePartyCommand chains three rules to demonstrate a multi-rule
// success path that commits every staged effect together: a leader check,
// a duration calculation that depends on it, and the effect application
// that depends on both.

// ValidateLeaderRule fails the chain unless the acting entity is a Paladin
// — the only OSRIC class whose aura-of-courage ability this fixture models.
type ValidateLeaderRule struct{ kernel.BaseRule }

func NewValidateLeaderRule() *ValidateLeaderRule {
	return &ValidateLeaderRule{kernel.BaseRule{RuleName: "validate-leader", RulePriority: 0}}
}

func (r *ValidateLeaderRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *ValidateLeaderRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	leader, ok := kernel.GetEntity[*Character](gctx, cmd.ActorID)
	if !ok {
		return kernel.NewFailureResult("leader entity not found"), nil
	}
	if leader.Class != "Paladin" {
		return kernel.NewFailureResult("only a Paladin can inspire the party"), nil
	}
	return kernel.NewSuccessResult("leader validated"), nil
}

// CalcDurationRule derives the inspiration's duration in rounds from the
// leader's Charisma score and stages it on the temporary workspace for
// ApplyInspirationRule to pick up.
type CalcDurationRule struct{ kernel.BaseRule }

func NewCalcDurationRule() *CalcDurationRule {
	return &CalcDurationRule{kernel.BaseRule{RuleName: "calc-duration", RulePriority: 1, RulePrerequisites: []string{"validate-leader"}}}
}

func (r *CalcDurationRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *CalcDurationRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	leader, ok := kernel.GetEntity[*Character](gctx, cmd.ActorID)
	if !ok {
		return kernel.NewFailureResult("leader entity not found"), nil
	}
	charisma := leader.Abilities["Charisma"]
	duration := charisma / 3
	if duration < 1 {
		duration = 1
	}
	gctx.SetTemporary("inspiration-duration", duration)
	return kernel.NewSuccessResult("duration calculated", kernel.WithData(map[string]interface{}{"duration": duration})), nil
}

// ApplyInspirationRule marks every target inspired and stages one effect
// per target, all committed atomically with the leader check and the
// duration calculation that preceded it.
type ApplyInspirationRule struct{ kernel.BaseRule }

func NewApplyInspirationRule() *ApplyInspirationRule {
	return &ApplyInspirationRule{kernel.BaseRule{RuleName: "apply-inspiration", RulePriority: 2, RulePrerequisites: []string{"calc-duration"}}}
}

func (r *ApplyInspirationRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *ApplyInspirationRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	duration, _ := kernel.GetTemporary[int](gctx, "inspiration-duration")

	for _, targetID := range cmd.TargetIDs {
		target, ok := kernel.GetEntity[*Character](gctx, targetID)
		if !ok {
			continue
		}
		target.Inspired = true
		gctx.SetEntity(targetID, target)
		gctx.Effects().Add("inspired", targetID, duration)
	}

	return kernel.NewSuccessResult("party inspired", kernel.WithData(map[string]interface{}{
		"duration":    duration,
		"partySize":   len(cmd.TargetIDs),
		"inspiration": true,
	})), nil
}

// RegisterInspirePartyCommand wires the "inspire-party" command and its
// three-rule chain.
func RegisterInspirePartyCommand(e *kernel.Engine) error {
	for _, rule := range []kernel.Rule{NewValidateLeaderRule(), NewCalcDurationRule(), NewApplyInspirationRule()} {
		if err := e.RegisterRule(rule); err != nil {
			return err
		}
	}
	return e.RegisterCommand(kernel.CommandBinding{
		Type:          "inspire-party",
		RequiredRules: []string{"validate-leader", "calc-duration", "apply-inspiration"},
	})
}
