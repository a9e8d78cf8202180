package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

func newCreateCharacterGameContext() *kernel.GameContext {
	return kernel.NewGameContext(kernel.NewRNG(1))
}

func TestAbilityScoreGenerationRule_FillsAllSixAbilitiesWithinRange(t *testing.T) {
	gctx := newCreateCharacterGameContext()
	rule := NewAbilityScoreGenerationRule()
	cmd := &kernel.Command{Type: "create-character", Parameters: &CreateCharacterParams{Name: "Thrain", Race: "Dwarf", Class: "Fighter"}}

	result, err := rule.Execute(context.Background(), gctx, cmd)
	require.NoError(t, err)
	require.Equal(t, kernel.ResultSuccess, result.Kind)

	scores, ok := kernel.GetTemporary[map[string]int](gctx, "generated-abilities")
	require.True(t, ok)
	require.Len(t, scores, len(abilityOrder))
	for _, ability := range abilityOrder {
		v, present := scores[ability]
		assert.True(t, present, "missing ability %s", ability)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 18)
	}
}

func TestRacialAbilityAdjustmentRule_DwarfGetsConstitutionBonusAndCharismaPenalty(t *testing.T) {
	gctx := newCreateCharacterGameContext()
	gctx.SetTemporary("generated-abilities", map[string]int{
		"Strength": 10, "Intelligence": 10, "Wisdom": 10,
		"Dexterity": 10, "Constitution": 10, "Charisma": 10,
	})
	rule := NewRacialAbilityAdjustmentRule()
	cmd := &kernel.Command{Parameters: &CreateCharacterParams{Race: "Dwarf"}}

	result, err := rule.Execute(context.Background(), gctx, cmd)
	require.NoError(t, err)
	require.Equal(t, kernel.ResultSuccess, result.Kind)

	scores, _ := kernel.GetTemporary[map[string]int](gctx, "generated-abilities")
	assert.Equal(t, 11, scores["Constitution"])
	assert.Equal(t, 9, scores["Charisma"])
}

func TestRacialRequirementsRule_CriticalFailureWhenDwarfConstitutionTooLow(t *testing.T) {
	gctx := newCreateCharacterGameContext()
	gctx.SetTemporary("generated-abilities", map[string]int{"Constitution": 8})
	rule := NewRacialRequirementsRule()
	cmd := &kernel.Command{Parameters: &CreateCharacterParams{Race: "Dwarf"}}

	result, err := rule.Execute(context.Background(), gctx, cmd)
	require.NoError(t, err)
	require.Equal(t, kernel.ResultFailure, result.Kind)
	assert.True(t, result.Critical)
	assert.Equal(t, 8, result.Data["rolled"])
	assert.Equal(t, 9, result.Data["required"])
}

func TestRacialRequirementsRule_PassesWhenMinimumMet(t *testing.T) {
	gctx := newCreateCharacterGameContext()
	gctx.SetTemporary("generated-abilities", map[string]int{"Constitution": 9})
	rule := NewRacialRequirementsRule()
	cmd := &kernel.Command{Parameters: &CreateCharacterParams{Race: "Dwarf"}}

	result, err := rule.Execute(context.Background(), gctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, kernel.ResultSuccess, result.Kind)
}

func TestClassRequirementsRule_CriticalFailureWhenFighterStrengthTooLow(t *testing.T) {
	gctx := newCreateCharacterGameContext()
	gctx.SetTemporary("generated-abilities", map[string]int{"Strength": 8})
	rule := NewClassRequirementsRule()
	cmd := &kernel.Command{Parameters: &CreateCharacterParams{Class: "Fighter"}}

	result, err := rule.Execute(context.Background(), gctx, cmd)
	require.NoError(t, err)
	require.Equal(t, kernel.ResultFailure, result.Kind)
	assert.True(t, result.Critical)

	assert.Empty(t, gctx.Events().Effects())
}

func TestCreateCharacter_RejectsUnsupportedRaceBeforeAnyRuleRuns(t *testing.T) {
	e := kernel.NewEngine(kernel.EngineOptions{Seed: 7})
	require.NoError(t, RegisterCreateCharacterCommand(e))
	require.NoError(t, e.Start())

	result := e.Execute(context.Background(), "create-character", &CreateCharacterParams{
		Name: "Grok", Race: "Ogre", Class: "Fighter",
	}, "")

	require.False(t, result.OK)
	assert.Equal(t, kernel.ErrValidationFailed, result.Error.Code)
	assert.Empty(t, e.Context().Events().Effects())
}

func TestCreateCharacter_RejectsEmptyNameBeforeAnyRuleRuns(t *testing.T) {
	e := kernel.NewEngine(kernel.EngineOptions{Seed: 7})
	require.NoError(t, RegisterCreateCharacterCommand(e))
	require.NoError(t, e.Start())

	result := e.Execute(context.Background(), "create-character", &CreateCharacterParams{
		Name: "", Race: "Dwarf", Class: "Fighter",
	}, "")

	require.False(t, result.OK)
	assert.Equal(t, kernel.ErrValidationFailed, result.Error.Code)
	assert.Empty(t, e.Context().Events().Effects())
}

func TestCreateCharacter_EndToEndCriticalFailureShortCircuitsBeforeClassRequirements(t *testing.T) {
	// Seed 13 rolls Strength 13 and Constitution 6; the Dwarf adjustment
	// lifts Constitution only to 7, so racial-requirements fails critically
	// and class-requirements (which Strength 13 would pass) never runs.
	e := kernel.NewEngine(kernel.EngineOptions{Seed: 13})
	require.NoError(t, RegisterCreateCharacterCommand(e))
	require.NoError(t, e.Start())

	result := e.Execute(context.Background(), "create-character", &CreateCharacterParams{
		Name: "Durin", Race: "Dwarf", Class: "Fighter",
	}, "")

	require.False(t, result.OK)
	assert.Equal(t, kernel.ErrRuleFailure, result.Error.Code)
	assert.True(t, result.Critical)
	assert.Equal(t, "Dwarf requires Constitution 9 or higher", result.Error.Message)
	assert.Equal(t, 7, result.Error.Details["rolled"])
	assert.Empty(t, e.Context().Events().Effects())
}
