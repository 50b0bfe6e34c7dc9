package evaluator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrder(t *testing.T) {
	assert.Equal(t, 1, AllSame.Compare(AllDifferent))
	assert.Equal(t, 1, AllDifferent.Compare(TwoPlusOne))
	assert.Equal(t, 1, AllSame.Compare(TwoPlusOne))
	assert.Equal(t, -1, TwoPlusOne.Compare(AllSame))
	assert.Equal(t, 0, AllDifferent.Compare(AllDifferent))
}

func TestParseRank(t *testing.T) {
	for _, r := range Ranks {
		parsed, err := ParseRank(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRank("flush")
	assert.Error(t, err)
}

func TestRankAndOutcomeJSON(t *testing.T) {
	data, err := json.Marshal(map[string]any{"rank": AllSame, "outcome": OpponentWins})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rank":"all-same","outcome":"opponent-wins"}`, string(data))

	var decoded struct {
		Rank    Rank    `json:"rank"`
		Outcome Outcome `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, AllSame, decoded.Rank)
	assert.Equal(t, OpponentWins, decoded.Outcome)

	_, err = json.Marshal(Rank(0))
	assert.Error(t, err)
}
