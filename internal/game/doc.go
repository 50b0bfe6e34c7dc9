// Package game runs an X/Y/Z card battle session: dealing, the optional
// exchange, the battle and the win streak that drives the difficulty
// ladder.
//
// The main type is Session, a small state machine:
//
//	Title --Start--> Dealt --Exchange--> Exchanged
//	Dealt|Exchanged --Battle--> Won | Lost | Drawn
//	Drawn --Redeal--> Dealt
//	Won --Continue--> Dealt
//	Won --Stop--> Finished
//	Lost|Finished --Restart--> Title
//
// # Basic Usage
//
//	s := game.NewSession(randutil.New(42))
//	_ = s.Start()
//	_ = s.Exchange(card.Left, card.Right)
//	_ = s.Battle()
//	snap := s.Snapshot()
//
// # Deterministic Testing
//
// All randomness comes from the *rand.Rand passed to NewSession, so a fixed
// seed replays the same deals and the same lies. Event timestamps come from
// a quartz.Clock, which tests replace with quartz.NewMock:
//
//	s := game.NewSession(rng, game.WithClock(quartz.NewMock(t)))
//
// A Session is not safe for concurrent use. Callers that share one across
// goroutines must serialise access themselves.
package game
