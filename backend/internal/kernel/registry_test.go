package kernel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopRule struct{ BaseRule }

func (r *noopRule) CanApply(gctx *GameContext, cmd *Command) bool { return true }
func (r *noopRule) Execute(ctx context.Context, gctx *GameContext, cmd *Command) (RuleResult, error) {
	return NewSuccessResult("ok"), nil
}

func TestRegistry_RejectsDuplicateRuleNames(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.registerRule(&noopRule{BaseRule{RuleName: "a"}}))
	err := reg.registerRule(&noopRule{BaseRule{RuleName: "a"}})
	assert.Error(t, err)
}

func TestRegistry_RejectsEmptyRuleName(t *testing.T) {
	reg := newRegistry()
	err := reg.registerRule(&noopRule{BaseRule{RuleName: ""}})
	assert.Error(t, err)
}

func TestRegistry_RejectsDuplicateCommandTypes(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.registerCommand(CommandBinding{Type: "cmd-a"}))
	err := reg.registerCommand(CommandBinding{Type: "cmd-a"})
	assert.Error(t, err)
}

func TestRegistry_ValidateCatchesUnknownPrerequisite(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.registerRule(&noopRule{BaseRule{RuleName: "a", RulePrerequisites: []string{"ghost"}}}))
	err := reg.validate()
	assert.Error(t, err)
}

func TestRegistry_ValidateCatchesUnknownRequiredRule(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.registerCommand(CommandBinding{Type: "cmd-a", RequiredRules: []string{"ghost"}}))
	err := reg.validate()
	assert.Error(t, err)
}

func TestRegistry_ValidatePassesForConsistentGraph(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.registerRule(&noopRule{BaseRule{RuleName: "a"}}))
	require.NoError(t, reg.registerRule(&noopRule{BaseRule{RuleName: "b", RulePrerequisites: []string{"a"}}}))
	require.NoError(t, reg.registerCommand(CommandBinding{Type: "cmd-a", RequiredRules: []string{"a", "b"}}))
	assert.NoError(t, reg.validate())
}
