package statistics

import (
	"math"
	"testing"

	"github.com/lox/xyzbattle/internal/difficulty"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 || stats.LieRate() != 0 {
		t.Errorf("Expected zero rates for empty stats")
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_SingleSession(t *testing.T) {
	stats := &Statistics{}
	stats.Add(SessionResult{
		Seed:        12345,
		FinalStreak: 4,
		Rounds:      6,
		Wins:        4,
		Losses:      1,
		Draws:       1,
		Exchanges:   3,
		TopLevel:    difficulty.Easy,
	})

	if stats.Sessions != 1 {
		t.Errorf("Expected 1 session, got %d", stats.Sessions)
	}
	if stats.Mean() != 4 {
		t.Errorf("Expected mean of 4, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.BestStreak != 4 || stats.BestSeed != 12345 {
		t.Errorf("Expected best streak 4 from seed 12345, got %d from %d", stats.BestStreak, stats.BestSeed)
	}
	if got := stats.WinRate(); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Expected win rate 0.8, got %f", got)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MultipleSessions(t *testing.T) {
	stats := &Statistics{}
	streaks := []int{0, 2, 4, 4, 10}
	for i, streak := range streaks {
		level := difficulty.For(streak).Level
		stats.Add(SessionResult{
			Seed:        int64(i),
			FinalStreak: streak,
			Rounds:      streak + 1,
			Wins:        streak,
			Losses:      1,
			TopLevel:    level,
		})
	}

	if got := stats.Mean(); math.Abs(got-4) > 1e-9 {
		t.Errorf("Expected mean 4, got %f", got)
	}
	// sample variance of 0,2,4,4,10 = (16+4+0+0+36)/4 = 14
	if got := stats.Variance(); math.Abs(got-14) > 1e-9 {
		t.Errorf("Expected variance 14, got %f", got)
	}
	if got := stats.Median(); got != 4 {
		t.Errorf("Expected median 4, got %f", got)
	}
	if got := stats.Percentile(1.0); got != 10 {
		t.Errorf("Expected max percentile 10, got %f", got)
	}
	if got := stats.Percentile(0.25); got != 2 {
		t.Errorf("Expected 25th percentile 2, got %f", got)
	}
	low, high := stats.ConfidenceInterval95()
	if low >= stats.Mean() || high <= stats.Mean() {
		t.Errorf("Expected CI around mean, got [%f, %f]", low, high)
	}
	if stats.BestStreak != 10 || stats.BestSeed != 4 {
		t.Errorf("Expected best streak 10 from seed 4, got %d from %d", stats.BestStreak, stats.BestSeed)
	}
	if stats.TopLevels[difficulty.Easy] != 4 || stats.TopLevels[difficulty.Challenging] != 1 {
		t.Errorf("Unexpected tier totals %v", stats.TopLevels)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []SessionResult{
		{Seed: 1, FinalStreak: 3, Rounds: 4, Wins: 3, Losses: 1},
		{Seed: 2, FinalStreak: 7, Rounds: 9, Wins: 7, Losses: 1, Draws: 1, Exchanges: 2},
		{Seed: 3, FinalStreak: 1, Rounds: 2, Wins: 1, Losses: 1},
		{Seed: 4, FinalStreak: 250, Rounds: 260, Wins: 250, Draws: 10, Deceptive: 50, Lies: 14, TopLevel: difficulty.EndlessHell, Capped: true},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	if a.Sessions != all.Sessions || a.Rounds != all.Rounds || a.Lies != all.Lies {
		t.Errorf("Merged totals differ: %+v vs %+v", a, all)
	}
	if math.Abs(a.Mean()-all.Mean()) > 1e-9 || math.Abs(a.Variance()-all.Variance()) > 1e-9 {
		t.Errorf("Merged moments differ")
	}
	if a.BestStreak != 250 || a.BestSeed != 4 {
		t.Errorf("Expected best 250 from seed 4, got %d from %d", a.BestStreak, a.BestSeed)
	}
	if got := a.LieRate(); math.Abs(got-0.28) > 1e-9 {
		t.Errorf("Expected lie rate 0.28, got %f", got)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected valid merged stats, got %v", err)
	}
}

func TestStatistics_ValidateCatchesMismatch(t *testing.T) {
	stats := &Statistics{}
	stats.Add(SessionResult{FinalStreak: 1, Rounds: 3, Wins: 1, Losses: 1})
	if err := stats.Validate(); err == nil {
		t.Error("Expected ledger mismatch to be reported")
	}

	stats = &Statistics{}
	stats.Add(SessionResult{FinalStreak: 5, Rounds: 5, Wins: 5})
	if err := stats.Validate(); err == nil {
		t.Error("Expected an uncapped session without a loss to be reported")
	}
}
