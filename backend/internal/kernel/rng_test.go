package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_SameSeedSameSequence(t *testing.T) {
	a := NewRNG(99)
	b := NewRNG(99)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Int(1, 20), b.Int(1, 20))
	}
}

func TestRNG_IntRespectsBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 200; i++ {
		v := r.Int(3, 8)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 8)
	}
}

func TestRNG_FloatIsWithinUnitInterval(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 200; i++ {
		v := r.Float()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRNG_RollParsesNotation(t *testing.T) {
	r := NewRNG(5)

	result, err := r.Roll("3d6+2")
	require.NoError(t, err)
	assert.Len(t, result.Dice, 3)
	assert.Equal(t, 2, result.Modifier)
	for _, d := range result.Dice {
		assert.GreaterOrEqual(t, d, 1)
		assert.LessOrEqual(t, d, 6)
	}

	sum := result.Modifier
	for _, d := range result.Dice {
		sum += d
	}
	assert.Equal(t, sum, result.Total)
}

func TestRNG_RollRejectsInvalidNotation(t *testing.T) {
	r := NewRNG(1)

	_, err := r.Roll("not-dice")
	assert.Error(t, err)

	_, err = r.Roll("0d6")
	assert.Error(t, err)

	_, err = r.Roll("1d1")
	assert.Error(t, err)
}

func TestRNG_RollWithoutModifier(t *testing.T) {
	r := NewRNG(1)
	result, err := r.Roll("2d4")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Modifier)
	assert.Len(t, result.Dice, 2)
}
