package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/xyzbattle/internal/difficulty"
)

const numLevels = int(difficulty.EndlessHell) + 1

// SessionResult represents the outcome of one simulated session: rounds
// played until the first loss or the round cap.
type SessionResult struct {
	Seed        int64            // RNG seed for this session (for replay)
	FinalStreak int              // Streak when the session ended
	Rounds      int              // Rounds battled, draws included
	Wins        int              // Rounds won
	Losses      int              // 0 or 1
	Draws       int              // Rounds drawn and redealt
	Exchanges   int              // Rounds where the bot swapped a card
	Deceptive   int              // Comments heard at a tier that may lie
	Lies        int              // Of those, how many lied
	TopLevel    difficulty.Level // Highest tier reached
	Capped      bool             // Stopped by the round cap rather than a loss
}

// Statistics aggregates simulated sessions
type Statistics struct {
	Sessions  int
	SumStreak float64
	SumSq     float64   // Sum of squares for variance calculation
	Values    []float64 // Final streaks for median/percentile calculation

	BestStreak int
	BestSeed   int64

	Rounds    int
	Wins      int
	Losses    int
	Draws     int
	Exchanges int
	Capped    int

	Deceptive int
	Lies      int

	TopLevels [numLevels]int // Sessions by highest tier reached
}

// Add incorporates a session result
func (s *Statistics) Add(r SessionResult) {
	v := float64(r.FinalStreak)
	s.Sessions++
	s.SumStreak += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)

	if r.FinalStreak > s.BestStreak || s.Sessions == 1 {
		s.BestStreak = r.FinalStreak
		s.BestSeed = r.Seed
	}

	s.Rounds += r.Rounds
	s.Wins += r.Wins
	s.Losses += r.Losses
	s.Draws += r.Draws
	s.Exchanges += r.Exchanges
	s.Deceptive += r.Deceptive
	s.Lies += r.Lies
	if r.Capped {
		s.Capped++
	}
	if lvl := int(r.TopLevel); lvl >= 0 && lvl < numLevels {
		s.TopLevels[lvl]++
	}
}

// Merge folds other into s. Values keep s's order followed by other's.
func (s *Statistics) Merge(other *Statistics) {
	if other.Sessions == 0 {
		return
	}
	if s.Sessions == 0 || other.BestStreak > s.BestStreak {
		s.BestStreak = other.BestStreak
		s.BestSeed = other.BestSeed
	}
	s.Sessions += other.Sessions
	s.SumStreak += other.SumStreak
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Draws += other.Draws
	s.Exchanges += other.Exchanges
	s.Capped += other.Capped
	s.Deceptive += other.Deceptive
	s.Lies += other.Lies
	for i := range s.TopLevels {
		s.TopLevels[i] += other.TopLevels[i]
	}
}

// Mean returns the mean final streak
func (s *Statistics) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.SumStreak / float64(s.Sessions)
}

// Variance returns the sample variance of final streaks
func (s *Statistics) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median final streak
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the final streak at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns wins over decided (non-drawn) rounds
func (s *Statistics) WinRate() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided)
}

// LieRate returns the observed share of lying comments at deceptive tiers
func (s *Statistics) LieRate() float64 {
	if s.Deceptive == 0 {
		return 0
	}
	return float64(s.Lies) / float64(s.Deceptive)
}

// IsLedgerBalanced checks that every round is a win, a loss or a draw
func (s *Statistics) IsLedgerBalanced() bool {
	return s.Wins+s.Losses+s.Draws == s.Rounds
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Sessions <= 0 {
		return fmt.Errorf("invalid sessions count: %d", s.Sessions)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: wins=%d losses=%d draws=%d rounds=%d",
			s.Wins, s.Losses, s.Draws, s.Rounds)
	}
	if len(s.Values) != s.Sessions {
		return fmt.Errorf("values array length (%d) does not match sessions count (%d)",
			len(s.Values), s.Sessions)
	}
	if s.Losses+s.Capped != s.Sessions {
		return fmt.Errorf("sessions must end in a loss or at the cap: losses=%d capped=%d sessions=%d",
			s.Losses, s.Capped, s.Sessions)
	}
	if s.Lies > s.Deceptive {
		return fmt.Errorf("lies (%d) exceed deceptive comments (%d)", s.Lies, s.Deceptive)
	}
	if s.Exchanges > s.Rounds {
		return fmt.Errorf("exchanges (%d) exceed rounds (%d)", s.Exchanges, s.Rounds)
	}

	total := 0
	for _, n := range s.TopLevels {
		total += n
	}
	if total != s.Sessions {
		return fmt.Errorf("tier totals (%d) do not match sessions count (%d)", total, s.Sessions)
	}
	return nil
}
