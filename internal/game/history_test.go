package game

import (
	"testing"

	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/stretchr/testify/assert"
)

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	for i := 1; i <= 5; i++ {
		h.Add(RoundRecord{Deal: i})
	}

	rounds := h.Rounds()
	assert.Len(t, rounds, 2)
	assert.Equal(t, 4, rounds[0].Deal)
	assert.Equal(t, 5, rounds[1].Deal)

	rounds[0].Deal = 99
	assert.Equal(t, 4, h.Rounds()[0].Deal, "Rounds returns a copy")
}

func TestHistorySummary(t *testing.T) {
	h := NewHistory(0)
	h.Add(RoundRecord{Outcome: evaluator.PlayerWins, Exchange: &Exchange{}})
	h.Add(RoundRecord{Outcome: evaluator.PlayerWins, Deceptive: true})
	h.Add(RoundRecord{Outcome: evaluator.Draw})
	h.Add(RoundRecord{Outcome: evaluator.OpponentWins, Exchange: &Exchange{}})

	assert.Equal(t, Summary{Played: 4, Wins: 2, Losses: 1, Draws: 1, Exchanges: 2, Lies: 1}, h.Summary())
}

func TestPhaseText(t *testing.T) {
	for p := PhaseTitle; p <= PhaseFinished; p++ {
		text, err := p.MarshalText()
		assert.NoError(t, err)

		var back Phase
		assert.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, p, back)
	}

	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("lobby")))
	assert.True(t, PhaseDrawn.Resolved())
	assert.False(t, PhaseExchanged.Resolved())
}
