package rules

import (
	"context"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

// prereqTraceRule records its own name in the context's temporary
// workspace on execution, letting a caller assert the chain ran in
// prerequisite order regardless of registration order.
type prereqTraceRule struct {
	kernel.BaseRule
}

func (r *prereqTraceRule) CanApply(gctx *kernel.GameContext, cmd *kernel.Command) bool { return true }

func (r *prereqTraceRule) Execute(ctx context.Context, gctx *kernel.GameContext, cmd *kernel.Command) (kernel.RuleResult, error) {
	trace, _ := kernel.GetTemporary[[]string](gctx, "prereq-trace")
	trace = append(trace, r.RuleName)
	gctx.SetTemporary("prereq-trace", trace)
	return kernel.NewSuccessResult(r.RuleName + " ran"), nil
}

// RegisterPrereqDemoCommand wires the "prereq-demo" command: three rules
// named third/first/second but registered in that scrambled order, whose
// prerequisite chain still forces first -> second -> third.
func RegisterPrereqDemoCommand(e *kernel.Engine) error {
	third := &prereqTraceRule{kernel.BaseRule{RuleName: "third", RulePrerequisites: []string{"second"}}}
	first := &prereqTraceRule{kernel.BaseRule{RuleName: "first"}}
	second := &prereqTraceRule{kernel.BaseRule{RuleName: "second", RulePrerequisites: []string{"first"}}}

	for _, rule := range []kernel.Rule{third, first, second} {
		if err := e.RegisterRule(rule); err != nil {
			return err
		}
	}
	return e.RegisterCommand(kernel.CommandBinding{Type: "prereq-demo", RequiredRules: []string{"first", "second", "third"}})
}
