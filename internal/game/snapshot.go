package game

import (
	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/opponent"
)

// Snapshot is a presentation-neutral view of a session. The opponent's hand
// and the outcome are only filled in once the round has been battled.
type Snapshot struct {
	Phase       Phase           `json:"phase"`
	Round       int             `json:"round"`
	Deal        int             `json:"deal"`
	Streak      int             `json:"streak"`
	BestStreak  int             `json:"bestStreak"`
	FinalStreak int             `json:"finalStreak"`
	Tier        difficulty.Tier `json:"tier"`

	PlayerHand  *card.Hand        `json:"playerHand,omitempty"`
	PlayerRank  *evaluator.Rank   `json:"playerRank,omitempty"`
	Comment     *opponent.Comment `json:"comment,omitempty"`
	Reveal      *opponent.Reveal  `json:"reveal,omitempty"`
	Exchange    *Exchange         `json:"exchange,omitempty"`
	CanExchange bool              `json:"canExchange"`
	CanSkip     bool              `json:"canSkip"`

	OpponentHand *card.Hand         `json:"opponentHand,omitempty"`
	OpponentRank *evaluator.Rank    `json:"opponentRank,omitempty"`
	Outcome      *evaluator.Outcome `json:"outcome,omitempty"`
	Milestone    *difficulty.Tier   `json:"milestone,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		Round:       s.roundStreak + 1,
		Deal:        s.deals,
		Streak:      s.streak,
		BestStreak:  s.best,
		FinalStreak: s.finalStreak,
		Tier:        s.tier,
	}
	if s.phase == PhaseTitle {
		snap.Round = 1
		return snap
	}
	if s.phase == PhaseFinished {
		return snap
	}

	player := s.player
	playerRank := evaluator.RankOf(player)
	comment := s.comment
	reveal := s.reveal
	snap.PlayerHand = &player
	snap.PlayerRank = &playerRank
	snap.Comment = &comment
	snap.Reveal = &reveal
	if s.exchange != nil {
		ex := *s.exchange
		snap.Exchange = &ex
	}
	snap.CanExchange = s.phase == PhaseDealt
	snap.CanSkip = s.phase == PhaseDealt && !s.tier.ExchangeMandatory

	if s.phase.Resolved() {
		opp := s.opponent
		oppRank := evaluator.RankOf(opp)
		outcome := s.outcome
		snap.OpponentHand = &opp
		snap.OpponentRank = &oppRank
		snap.Outcome = &outcome
		if s.milestone != nil {
			m := *s.milestone
			snap.Milestone = &m
		}
	}
	return snap
}
