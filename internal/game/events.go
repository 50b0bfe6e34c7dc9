package game

import (
	"time"

	"github.com/lox/xyzbattle/internal/card"
	"github.com/lox/xyzbattle/internal/difficulty"
	"github.com/lox/xyzbattle/internal/evaluator"
)

// EventType names a session event.
type EventType string

const (
	EventTypeRoundDealt       EventType = "round_dealt"
	EventTypeCardsExchanged   EventType = "cards_exchanged"
	EventTypeRoundResolved    EventType = "round_resolved"
	EventTypeMilestoneReached EventType = "milestone_reached"
	EventTypeSessionReset     EventType = "session_reset"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything a session publishes.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundDealtEvent is published whenever fresh hands are dealt, including
// redeals after a draw.
type RoundDealtEvent struct {
	Deal      int
	Streak    int
	Tier      difficulty.Tier
	Player    card.Hand
	timestamp time.Time
}

func (e RoundDealtEvent) EventType() EventType { return EventTypeRoundDealt }
func (e RoundDealtEvent) Timestamp() time.Time { return e.timestamp }

// CardsExchangedEvent is published after a swap.
type CardsExchangedEvent struct {
	Exchange  Exchange
	timestamp time.Time
}

func (e CardsExchangedEvent) EventType() EventType { return EventTypeCardsExchanged }
func (e CardsExchangedEvent) Timestamp() time.Time { return e.timestamp }

// RoundResolvedEvent is published once per battle.
type RoundResolvedEvent struct {
	Record    RoundRecord
	timestamp time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// MilestoneReachedEvent is published when a win moves the streak into a
// higher tier.
type MilestoneReachedEvent struct {
	Streak    int
	Tier      difficulty.Tier
	timestamp time.Time
}

func (e MilestoneReachedEvent) EventType() EventType { return EventTypeMilestoneReached }
func (e MilestoneReachedEvent) Timestamp() time.Time { return e.timestamp }

// SessionResetEvent is published on restart.
type SessionResetEvent struct {
	FinalStreak int
	Outcome     evaluator.Outcome
	timestamp   time.Time
}

func (e SessionResetEvent) EventType() EventType { return EventTypeSessionReset }
func (e SessionResetEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives session events.
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus delivers events to subscribers synchronously, in subscription
// order.
type EventBus struct {
	subscribers []EventSubscriber
}

// Subscribe adds a subscriber.
func (bus *EventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers.
func (bus *EventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
