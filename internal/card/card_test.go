package card

import (
	"encoding/json"
	"testing"

	"github.com/lox/xyzbattle/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolBeats(t *testing.T) {
	tests := []struct {
		a, b Symbol
		want bool
	}{
		{X, Y, true},
		{Y, Z, true},
		{Z, X, true},
		{Y, X, false},
		{Z, Y, false},
		{X, Z, false},
		{X, X, false},
		{Y, Y, false},
		{Z, Z, false},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"vs"+tt.b.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Beats(tt.b))
		})
	}
}

func TestParseSymbol(t *testing.T) {
	for _, in := range []string{"x", "X", " x "} {
		s, err := ParseSymbol(in)
		require.NoError(t, err)
		assert.Equal(t, X, s)
	}

	_, err := ParseSymbol("w")
	assert.Error(t, err)
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input   string
		want    Position
		wantErr bool
	}{
		{input: "left", want: Left},
		{input: "L", want: Left},
		{input: "0", want: Left},
		{input: "左", want: Left},
		{input: "middle", want: Middle},
		{input: "mid", want: Middle},
		{input: "まん中", want: Middle},
		{input: "right", want: Right},
		{input: "r", want: Right},
		{input: "右", want: Right},
		{input: "up", wantErr: true},
		{input: "", wantErr: true},
		{input: "3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Hand
		wantErr  bool
	}{
		{name: "compact", input: "XXY", expected: Hand{X, X, Y}},
		{name: "lower case", input: "zyx", expected: Hand{Z, Y, X}},
		{name: "rendered form", input: "[X] [Y] [Z]", expected: Hand{X, Y, Z}},
		{name: "too short", input: "XY", wantErr: true},
		{name: "too long", input: "XYZX", wantErr: true},
		{name: "bad symbol", input: "XAY", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHand(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	assert.Panics(t, func() { MustParseHand("nope") })
}

func TestHandString(t *testing.T) {
	h := MustParseHand("XZY")
	assert.Equal(t, "[X] [Z] [Y]", h.String())
	assert.Equal(t, "XZY", h.Compact())
}

func TestHandIndexRoundTrip(t *testing.T) {
	seen := make(map[int]bool)
	for _, h := range AllHands() {
		i := h.Index()
		assert.False(t, seen[i])
		seen[i] = true
		assert.Equal(t, h, HandFromIndex(i))
	}
	assert.Len(t, seen, NumHands)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, 1, MustParseHand("ZZZ").Distinct())
	assert.Equal(t, 2, MustParseHand("XYX").Distinct())
	assert.Equal(t, 3, MustParseHand("YZX").Distinct())
}

func TestDealIsUniform(t *testing.T) {
	rng := randutil.New(7)
	var counts [NumSymbols]int
	const hands = 9000
	for range hands {
		h := Deal(rng)
		for _, s := range h {
			require.True(t, s.Valid())
			counts[s]++
		}
	}
	for _, c := range counts {
		assert.InDelta(t, hands, c, hands*0.05)
	}
}

func TestDealIsReproducible(t *testing.T) {
	a, b := randutil.New(3), randutil.New(3)
	for range 50 {
		assert.Equal(t, Deal(a), Deal(b))
	}
}

func TestExchange(t *testing.T) {
	for _, p := range Positions {
		for _, q := range Positions {
			player := MustParseHand("XXY")
			opponent := MustParseHand("ZYZ")
			beforePlayer, beforeOpponent := player, opponent

			require.NoError(t, Exchange(&player, p, &opponent, q))

			assert.Equal(t, beforeOpponent[q], player[p])
			assert.Equal(t, beforePlayer[p], opponent[q])
			for _, other := range Positions {
				if other != p {
					assert.Equal(t, beforePlayer[other], player[other])
				}
				if other != q {
					assert.Equal(t, beforeOpponent[other], opponent[other])
				}
			}
		}
	}
}

func TestExchangeRejectsOutOfRange(t *testing.T) {
	player := MustParseHand("XXX")
	opponent := MustParseHand("YYY")

	err := Exchange(&player, Position(3), &opponent, Left)
	require.ErrorIs(t, err, ErrInvalidPosition)
	err = Exchange(&player, Left, &opponent, Position(-1))
	require.ErrorIs(t, err, ErrInvalidPosition)

	assert.Equal(t, MustParseHand("XXX"), player)
	assert.Equal(t, MustParseHand("YYY"), opponent)
}

func TestAtOutOfRange(t *testing.T) {
	h := MustParseHand("XYZ")
	assert.Equal(t, Z, h.At(Right))
	for _, p := range []Position{-1, 3, 100} {
		s := h.At(p)
		assert.False(t, s.Valid(), "position %d", p)
		assert.Equal(t, "?", s.String())
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		Hand     Hand     `json:"hand"`
		Position Position `json:"position"`
		Symbol   Symbol   `json:"symbol"`
	}

	data, err := json.Marshal(payload{Hand: MustParseHand("XYZ"), Position: Right, Symbol: Z})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hand":"XYZ","position":"right","symbol":"Z"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"hand":"zzy","position":"m","symbol":"y"}`), &decoded))
	assert.Equal(t, MustParseHand("ZZY"), decoded.Hand)
	assert.Equal(t, Middle, decoded.Position)
	assert.Equal(t, Y, decoded.Symbol)
}
