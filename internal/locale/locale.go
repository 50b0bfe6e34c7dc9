// Package locale renders game state as player-facing text. Two phrasebooks
// exist, English and Japanese, and Match picks one from language
// preferences such as $LANG or a config value.
package locale

import (
	"fmt"
	"strings"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
	"github.com/lox/xyzbattle/internal/opponent"
	"golang.org/x/text/language"
)

// Language identifies a phrasebook.
type Language int

const (
	English Language = iota
	Japanese
)

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	if l == Japanese {
		return language.Japanese
	}
	return language.English
}

func (l Language) String() string {
	return l.Tag().String()
}

// supported is ordered like the Language constants so a match index maps
// straight onto a Language.
var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

// Match picks the best phrasebook for the given preferences. Each entry may
// be a BCP 47 tag, an Accept-Language list or a POSIX locale such as
// "ja_JP.UTF-8". Anything unrecognised falls back to English.
func Match(prefs ...string) Language {
	cleaned := make([]string, 0, len(prefs))
	for _, p := range prefs {
		if p = normalize(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return English
	}
	_, idx := language.MatchStrings(matcher, cleaned...)
	return Language(idx)
}

// Parse parses a single language setting such as "en", "ja" or "ja_JP" and
// fails when it names neither phrasebook.
func Parse(s string) (Language, error) {
	tag, err := language.Parse(normalize(s))
	if err != nil {
		return English, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English, fmt.Errorf("unsupported language %q", s)
	}
	return Language(idx), nil
}

func normalize(pref string) string {
	pref = strings.TrimSpace(pref)
	if i := strings.IndexAny(pref, ".@"); i >= 0 {
		pref = pref[:i]
	}
	switch strings.ToLower(pref) {
	case "", "c", "posix", "auto":
		return ""
	}
	return strings.ReplaceAll(pref, "_", "-")
}

// For returns the phrasebook of a language.
func For(l Language) *Phrasebook {
	if l == Japanese {
		return japanese
	}
	return english
}

// Labels are the fixed UI strings of a phrasebook.
type Labels struct {
	YourHand         string
	OpponentHand     string
	OpponentComment  string
	Hand             string
	Exchange         string
	ExchangeRequired string
	Exchanged        string
	NoExchange       string
	PickYours        string
	PickOpponent     string
	Back             string
	PressStart       string
	ContinuePrompt   string
	Redealing        string
	GameOver         string
	Goodbye          string
	Round            string // format: round number
	Wins             string // format: streak
	Streak           string
	Best             string
	Tier             string
	History          string
	NoHistory        string
	ExchangeHint     string
	Swapped          string // format: symbol given, symbol taken
	RestartPrompt    string
	NotNow           string
	Unknown          string // format: the rejected input
	Summary          string // format: played, wins, losses, draws
}

// Phrasebook holds every phrase of one language.
type Phrasebook struct {
	Language Language
	Title    string
	Footer   string
	Labels   Labels

	laughs          [card.NumSymbols]string
	conditions      map[opponent.Condition]string
	comment         string // format: laugh, condition
	ranks           map[evaluator.Rank]string
	tiers           map[difficulty.Level]string
	positions       [card.HandSize]string
	revealPositions [card.HandSize]string
	revealCard      string // format: position, symbol
	revealSep       string
	revealPrefix    string
	revealSuffix    string
	concealed       map[difficulty.Level]string
	milestones      map[difficulty.Level]string
	outcomes        map[evaluator.Outcome]string
	rules           string
}

// Laugh is the laugh associated with a majority symbol.
func (p *Phrasebook) Laugh(s card.Symbol) string {
	if !s.Valid() {
		return ""
	}
	return p.laughs[s]
}

// Condition is the mood phrase of a condition.
func (p *Phrasebook) Condition(c opponent.Condition) string {
	return p.conditions[c]
}

// Comment renders what the opponent says, quotes included.
func (p *Phrasebook) Comment(c opponent.Comment) string {
	return fmt.Sprintf(p.comment, p.Laugh(c.Laugh), p.Condition(c.Condition))
}

// Rank names a hand rank.
func (p *Phrasebook) Rank(r evaluator.Rank) string {
	return p.ranks[r]
}

// TierName is the tier's name without icon.
func (p *Phrasebook) TierName(t difficulty.Tier) string {
	return p.tiers[t.Level]
}

// Tier renders a tier with its icon.
func (p *Phrasebook) Tier(t difficulty.Tier) string {
	return t.Icon + " " + p.tiers[t.Level]
}

// Position names a card slot as the player types it.
func (p *Phrasebook) Position(pos card.Position) string {
	if !pos.Valid() {
		return ""
	}
	return p.positions[pos]
}

// Reveal renders the reveal line of a tier. Tiers that show nothing get
// their own taunt instead.
func (p *Phrasebook) Reveal(r opponent.Reveal) string {
	if len(r.Cards) == 0 {
		return p.revealPrefix + p.concealed[r.Level]
	}
	parts := make([]string, 0, len(r.Cards))
	for _, c := range r.Cards {
		parts = append(parts, fmt.Sprintf(p.revealCard, p.revealPositions[c.Position], c.Symbol))
	}
	line := strings.Join(parts, p.revealSep)
	if p.Language == English {
		line = strings.ToUpper(line[:1]) + line[1:]
	}
	return p.revealPrefix + line + p.revealSuffix
}

// Milestone announces entering a tier.
func (p *Phrasebook) Milestone(t difficulty.Tier) string {
	return p.milestones[t.Level]
}

// Outcome is the result banner from the player's point of view.
func (p *Phrasebook) Outcome(o evaluator.Outcome) string {
	return p.outcomes[o]
}

// Round is the heading of the round played at the given streak.
func (p *Phrasebook) Round(streak int) string {
	return fmt.Sprintf(p.Labels.Round, streak+1)
}

// Wins renders a streak count.
func (p *Phrasebook) Wins(streak int) string {
	return fmt.Sprintf(p.Labels.Wins, streak)
}

// Rules is the full rules text.
func (p *Phrasebook) Rules() string {
	return p.rules
}
