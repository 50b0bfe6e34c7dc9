package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/game"
	"github.com/lox/xyzbattle/internal/opponent"
	"github.com/lox/xyzbattle/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func dealtSnapshot(player, opp string, streak int) game.Snapshot {
	tier := difficulty.For(streak)
	hand := card.MustParseHand(player)
	oppHand := card.MustParseHand(opp)
	comment := opponent.NewCommenter(randutil.New(1)).Comment(oppHand, tier)
	reveal := opponent.RevealFor(oppHand, tier)
	return game.Snapshot{
		Phase:       game.PhaseDealt,
		Streak:      streak,
		Tier:        tier,
		PlayerHand:  &hand,
		Comment:     &comment,
		Reveal:      &reveal,
		CanExchange: true,
		CanSkip:     !tier.ExchangeMandatory,
	}
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"random", "reader", "stand"}, Names())

	for _, name := range Names() {
		b, err := New(name, randutil.New(1), quietLogger())
		require.NoError(t, err)
		assert.Equal(t, name, b.Name())
	}

	_, err := New("cheater", randutil.New(1), quietLogger())
	assert.Error(t, err)
}

func TestChoices(t *testing.T) {
	snap := dealtSnapshot("XYZ", "XYZ", 0)
	choices := Choices(snap)
	require.Len(t, choices, 10)
	assert.False(t, choices[0].Exchange)

	snap = dealtSnapshot("XYZ", "XYZ", 100)
	choices = Choices(snap)
	require.Len(t, choices, 9)
	for _, c := range choices {
		assert.True(t, c.Exchange)
	}

	snap.CanExchange = false
	assert.Empty(t, Choices(snap))
}

func TestBotsRespectMandatoryExchange(t *testing.T) {
	for _, name := range Names() {
		b, err := New(name, randutil.New(7), quietLogger())
		require.NoError(t, err)

		for _, h := range card.AllHands() {
			snap := dealtSnapshot(h.Compact(), "XXY", 150)
			d := b.Decide(snap)
			assert.True(t, d.Exchange, "%s skipped at Hell with %s", name, h)
			assert.True(t, d.Player.Valid())
			assert.True(t, d.Opponent.Valid())
		}
	}
}

func TestBotsPlayLegalRounds(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			b, err := New(name, randutil.New(3), quietLogger())
			require.NoError(t, err)
			s := game.NewSession(randutil.New(11))
			require.NoError(t, s.Start())

			for range 300 {
				require.NoError(t, Play(s, b.Decide(s.Snapshot())))
				switch s.Phase() {
				case game.PhaseWon:
					require.NoError(t, s.Continue())
				case game.PhaseDrawn:
					require.NoError(t, s.Redeal())
				case game.PhaseLost:
					require.NoError(t, s.Restart())
					require.NoError(t, s.Start())
				}
			}
		})
	}
}

func TestStandBotSkips(t *testing.T) {
	b := NewStandBot(randutil.New(1), quietLogger())
	assert.False(t, b.Decide(dealtSnapshot("XXY", "ZZZ", 0)).Exchange)
}

func TestReaderFindsTheWinningSwap(t *testing.T) {
	// Easy reveals X on both ends and "Perfect" pins the opponent to XXX.
	snap := dealtSnapshot("XXY", "XXX", 0)

	beliefs := Posterior(snap)
	require.Len(t, beliefs, 1)
	assert.Equal(t, card.MustParseHand("XXX"), beliefs[0].Hand)
	assert.InDelta(t, 1.0, beliefs[0].Probability, 1e-9)

	b := NewReaderBot(randutil.New(1), quietLogger())
	d := b.Decide(snap)
	require.True(t, d.Exchange)
	assert.Equal(t, card.Right, d.Player)
	assert.InDelta(t, 1.0, ExpectedScore(*snap.PlayerHand, d, beliefs), 1e-9)
	assert.InDelta(t, -1.0, ExpectedScore(*snap.PlayerHand, Decision{}, beliefs), 1e-9)
}

func TestPosteriorContainsTruth(t *testing.T) {
	for _, streak := range []int{0, 10, 30, 50, 100, 200} {
		for _, h := range card.AllHands() {
			snap := dealtSnapshot("XYZ", h.Compact(), streak)
			beliefs := Posterior(snap)

			total := 0.0
			found := false
			for _, belief := range beliefs {
				total += belief.Probability
				if belief.Hand == h {
					found = true
				}
			}
			assert.InDelta(t, 1.0, total, 1e-9)
			if !snap.Comment.Deceptive {
				assert.True(t, found, "streak %d hand %s", streak, h)
			}
		}
	}
}

func TestReaderBeatsRandom(t *testing.T) {
	score := func(b Bot) int {
		total := 0
		rng := randutil.New(21)
		for range 2000 {
			player, opp := card.Deal(rng), card.Deal(rng)
			snap := dealtSnapshot(player.Compact(), opp.Compact(), 0)
			d := b.Decide(snap)
			if d.Exchange {
				require.NoError(t, card.Exchange(&player, d.Player, &opp, d.Opponent))
			}
			switch evaluator.Compare(player, opp) {
			case evaluator.PlayerWins:
				total++
			case evaluator.OpponentWins:
				total--
			}
		}
		return total
	}

	reader := score(NewReaderBot(randutil.New(1), quietLogger()))
	random := score(NewRandomBot(randutil.New(1), quietLogger()))
	assert.Greater(t, reader, random)
}
