package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feremabraz/osric-rules-engine-sub007/backend/internal/kernel"
)

func TestNewRoller(t *testing.T) {
	roller := NewRoller(kernel.NewRNG(1))
	assert.NotNil(t, roller)
}

func TestRoller_Roll(t *testing.T) {
	roller := NewRoller(kernel.NewRNG(1))

	tests := []struct {
		name        string
		notation    string
		shouldError bool
		checkResult func(*testing.T, kernel.RollResult)
	}{
		{
			name:     "simple d20",
			notation: "1d20",
			checkResult: func(t *testing.T, r kernel.RollResult) {
				assert.Len(t, r.Dice, 1)
				assert.GreaterOrEqual(t, r.Dice[0], 1)
				assert.LessOrEqual(t, r.Dice[0], 20)
				assert.Equal(t, r.Total, r.Dice[0])
				assert.Equal(t, 0, r.Modifier)
			},
		},
		{
			name:     "multiple dice",
			notation: "3d6",
			checkResult: func(t *testing.T, r kernel.RollResult) {
				assert.Len(t, r.Dice, 3)
				total := 0
				for _, die := range r.Dice {
					assert.GreaterOrEqual(t, die, 1)
					assert.LessOrEqual(t, die, 6)
					total += die
				}
				assert.Equal(t, total, r.Total)
			},
		},
		{
			name:     "with positive modifier",
			notation: "2d8+5",
			checkResult: func(t *testing.T, r kernel.RollResult) {
				assert.Len(t, r.Dice, 2)
				assert.Equal(t, 5, r.Modifier)
				assert.Equal(t, r.Dice[0]+r.Dice[1]+5, r.Total)
			},
		},
		{
			name:     "with negative modifier",
			notation: "1d4-2",
			checkResult: func(t *testing.T, r kernel.RollResult) {
				assert.Len(t, r.Dice, 1)
				assert.Equal(t, -2, r.Modifier)
				assert.Equal(t, r.Dice[0]-2, r.Total)
			},
		},
		{
			name:     "d100",
			notation: "1d100",
			checkResult: func(t *testing.T, r kernel.RollResult) {
				assert.Len(t, r.Dice, 1)
				assert.GreaterOrEqual(t, r.Dice[0], 1)
				assert.LessOrEqual(t, r.Dice[0], 100)
			},
		},
		{
			name:     "complex notation",
			notation: "4d6+10",
			checkResult: func(t *testing.T, r kernel.RollResult) {
				assert.Len(t, r.Dice, 4)
				assert.Equal(t, 10, r.Modifier)
				assert.GreaterOrEqual(t, r.Total, 14)
				assert.LessOrEqual(t, r.Total, 34)
			},
		},
		{name: "invalid notation - no dice", notation: "invalid", shouldError: true},
		{name: "invalid notation - zero dice", notation: "0d6", shouldError: true},
		{name: "invalid dice type d1", notation: "1d1", shouldError: true},
		{name: "empty notation", notation: "", shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := roller.Roll(tt.notation)

			if tt.shouldError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				tt.checkResult(t, result)
			}
		})
	}
}

func TestRoller_RollAdvantage(t *testing.T) {
	roller := NewRoller(kernel.NewRNG(1))

	for i := 0; i < 10; i++ {
		result, err := roller.RollAdvantage()
		require.NoError(t, err)

		assert.Len(t, result.Dice, 1)
		assert.GreaterOrEqual(t, result.Dice[0], 1)
		assert.LessOrEqual(t, result.Dice[0], 20)
		assert.Equal(t, result.Total, result.Dice[0])
	}
}

func TestRoller_RollDisadvantage(t *testing.T) {
	roller := NewRoller(kernel.NewRNG(2))

	for i := 0; i < 10; i++ {
		result, err := roller.RollDisadvantage()
		require.NoError(t, err)

		assert.Len(t, result.Dice, 1)
		assert.GreaterOrEqual(t, result.Dice[0], 1)
		assert.LessOrEqual(t, result.Dice[0], 20)
		assert.Equal(t, result.Total, result.Dice[0])
	}
}

func TestRoller_AdvantageVsDisadvantage(t *testing.T) {
	advRoller := NewRoller(kernel.NewRNG(3))
	disRoller := NewRoller(kernel.NewRNG(3))

	advantageSum := 0
	disadvantageSum := 0
	rolls := 200

	for i := 0; i < rolls; i++ {
		adv, _ := advRoller.RollAdvantage()
		dis, _ := disRoller.RollDisadvantage()

		advantageSum += adv.Total
		disadvantageSum += dis.Total
	}

	assert.Greater(t, float64(advantageSum)/float64(rolls), float64(disadvantageSum)/float64(rolls))
}
