package simulator

import (
	"context"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew(t *testing.T) {
	simulator := New(Config{Sessions: 100, Seed: 12345, Logger: quietLogger()})
	if simulator == nil {
		t.Fatal("New() returned nil")
	}
	if simulator.config.Bot != "reader" {
		t.Errorf("Expected default bot 'reader', got %s", simulator.config.Bot)
	}
	if simulator.config.Workers <= 0 {
		t.Errorf("Expected positive worker count, got %d", simulator.config.Workers)
	}
	if simulator.config.MaxRounds != DefaultMaxRounds {
		t.Errorf("Expected max rounds %d, got %d", DefaultMaxRounds, simulator.config.MaxRounds)
	}
}

func TestRunSimulation_Convenience(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 20, "stand", 12345, quietLogger())
	if err != nil {
		t.Fatalf("RunSimulation failed: %v", err)
	}
	if stats.Sessions != 20 {
		t.Errorf("Expected 20 sessions, got %d", stats.Sessions)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestRun_DeterministicAcrossWorkers(t *testing.T) {
	run := func(workers int) []float64 {
		stats, err := New(Config{Sessions: 64, Bot: "random", Seed: 7, Workers: workers, Logger: quietLogger()}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run with %d workers failed: %v", workers, err)
		}
		return stats.Values
	}

	single := run(1)
	if many := run(8); !slices.Equal(single, many) {
		t.Errorf("Results depend on worker count:\n1: %v\n8: %v", single, many)
	}
	if again := run(1); !slices.Equal(single, again) {
		t.Errorf("Same seed produced different results")
	}
}

func TestRun_RoundCap(t *testing.T) {
	stats, err := New(Config{Sessions: 10, Bot: "reader", Seed: 3, MaxRounds: 2, Logger: quietLogger()}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, v := range stats.Values {
		if v > 2 {
			t.Errorf("Streak %v exceeds the round cap", v)
		}
	}
	if stats.Rounds > 20 {
		t.Errorf("Expected at most 20 rounds, got %d", stats.Rounds)
	}
}

func TestRun_ReaderOutlastsRandom(t *testing.T) {
	mean := func(botName string) float64 {
		stats, err := New(Config{Sessions: 300, Bot: botName, Seed: 99, MaxRounds: 200, Logger: quietLogger()}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		return stats.Mean()
	}

	reader, random := mean("reader"), mean("random")
	if reader <= random {
		t.Errorf("Expected reader (%.2f) to outlast random (%.2f)", reader, random)
	}
}

func TestRun_Errors(t *testing.T) {
	if _, err := New(Config{Sessions: 0}).Run(context.Background()); err == nil {
		t.Error("Expected error for zero sessions")
	}
	if _, err := New(Config{Sessions: 1, Bot: "oracle"}).Run(context.Background()); err == nil {
		t.Error("Expected error for unknown bot")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Config{Sessions: 4, Seed: 1}).Run(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
