package difficulty

import (
	"testing"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	tests := []struct {
		streak int
		want   Level
	}{
		{-5, Easy},
		{0, Easy},
		{9, Easy},
		{10, Challenging},
		{29, Challenging},
		{30, Hard},
		{49, Hard},
		{50, Oni},
		{99, Oni},
		{100, Hell},
		{199, Hell},
		{200, EndlessHell},
		{10000, EndlessHell},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, For(tt.streak).Level, "streak %d", tt.streak)
	}
}

func TestForIsMonotonic(t *testing.T) {
	prev := For(0)
	assert.Equal(t, Easy, prev.Level)
	for streak := 1; streak <= 300; streak++ {
		cur := For(streak)
		assert.GreaterOrEqual(t, cur.Level, prev.Level, "streak %d", streak)
		prev = cur
	}
}

func TestCrossingThresholdRaisesTier(t *testing.T) {
	for _, threshold := range Thresholds() {
		before, after := For(threshold-1), For(threshold)
		assert.Greater(t, after.Level, before.Level, "threshold %d", threshold)
	}
	assert.Equal(t, []int{10, 30, 50, 100, 200}, Thresholds())
}

func TestTierConfiguration(t *testing.T) {
	tiers := Ladder()
	require.Len(t, tiers, 6)

	assert.Equal(t, []card.Position{card.Left, card.Right}, tiers[Easy].Reveal)
	assert.Equal(t, []card.Position{card.Left}, tiers[Challenging].Reveal)
	for _, lvl := range []Level{Hard, Oni, Hell, EndlessHell} {
		assert.Zero(t, tiers[lvl].RevealCount(), tiers[lvl].Name)
	}

	for _, tier := range tiers {
		assert.Equal(t, tier.Level >= Oni, tier.Precision == Blurred, tier.Name)
		assert.Equal(t, tier.Level >= Hell, tier.ExchangeMandatory, tier.Name)
		if tier.Level == EndlessHell {
			assert.InDelta(t, 0.3, tier.DeceptionProbability, 1e-9)
			assert.True(t, tier.Deceptive())
		} else {
			assert.Zero(t, tier.DeceptionProbability, tier.Name)
			assert.False(t, tier.Deceptive())
		}
	}
}

func TestLadderReturnsCopies(t *testing.T) {
	tiers := Ladder()
	tiers[Easy].Reveal[0] = card.Middle
	tiers[Easy].Name = "mutated"

	fresh := For(0)
	assert.Equal(t, card.Left, fresh.Reveal[0])
	assert.Equal(t, "Easy", fresh.Name)
}

func TestCrossed(t *testing.T) {
	tier, ok := Crossed(9, 10)
	require.True(t, ok)
	assert.Equal(t, Challenging, tier.Level)

	_, ok = Crossed(10, 11)
	assert.False(t, ok)

	_, ok = Crossed(12, 0)
	assert.False(t, ok, "losing a streak is not a milestone")

	tier, ok = Crossed(199, 200)
	require.True(t, ok)
	assert.Equal(t, EndlessHell, tier.Level)
}

func TestByLevel(t *testing.T) {
	tier, ok := ByLevel(Hell)
	require.True(t, ok)
	assert.Equal(t, 100, tier.MinStreak)

	_, ok = ByLevel(Level(42))
	assert.False(t, ok)

	assert.Equal(t, EndlessHell, Top().Level)
}
