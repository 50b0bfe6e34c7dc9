package game

import (
	"time"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/opponent"
)

// Exchange records a swap: the player's card at Player went to the
// opponent's slot Opponent and vice versa.
type Exchange struct {
	Player   card.Position `json:"player"`
	Opponent card.Position `json:"opponent"`
	Gave     card.Symbol   `json:"gave"`
	Took     card.Symbol   `json:"took"`
}

// RoundRecord is one battled round.
type RoundRecord struct {
	Deal         int               `json:"deal"`
	Level        difficulty.Level  `json:"level"`
	StreakBefore int               `json:"streakBefore"`
	StreakAfter  int               `json:"streakAfter"`
	Player       card.Hand         `json:"player"`
	Opponent     card.Hand         `json:"opponent"`
	Comment      opponent.Comment  `json:"comment"`
	Deceptive    bool              `json:"deceptive"`
	Exchange     *Exchange         `json:"exchange,omitempty"`
	Outcome      evaluator.Outcome `json:"outcome"`
	At           time.Time         `json:"at"`
}

// Summary totals a history.
type Summary struct {
	Played    int `json:"played"`
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	Draws     int `json:"draws"`
	Exchanges int `json:"exchanges"`
	Lies      int `json:"lies"`
}

// History keeps the battled rounds of a session in memory. A positive
// limit keeps only the most recent rounds.
type History struct {
	rounds []RoundRecord
	limit  int
}

// NewHistory creates a history. limit <= 0 means unbounded.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add appends a round, dropping the oldest when over the limit.
func (h *History) Add(r RoundRecord) {
	h.rounds = append(h.rounds, r)
	if h.limit > 0 && len(h.rounds) > h.limit {
		h.rounds = append(h.rounds[:0], h.rounds[len(h.rounds)-h.limit:]...)
	}
}

// Len returns the number of rounds kept.
func (h *History) Len() int {
	return len(h.rounds)
}

// Rounds returns a copy of the kept rounds, oldest first.
func (h *History) Rounds() []RoundRecord {
	return append([]RoundRecord(nil), h.rounds...)
}

// Summary totals the kept rounds.
func (h *History) Summary() Summary {
	return Summarize(h.rounds)
}

// Summarize totals a list of rounds.
func Summarize(rounds []RoundRecord) Summary {
	var s Summary
	for _, r := range rounds {
		s.Played++
		switch r.Outcome {
		case evaluator.PlayerWins:
			s.Wins++
		case evaluator.OpponentWins:
			s.Losses++
		default:
			s.Draws++
		}
		if r.Exchange != nil {
			s.Exchanges++
		}
		if r.Deceptive {
			s.Lies++
		}
	}
	return s
}
