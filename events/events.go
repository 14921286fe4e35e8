package events

import (
	"context"
	"sync"

	"parlay/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBetPlaced         EventType = "bet_placed"
	EventTypeBetDeleted        EventType = "bet_deleted"
	EventTypeBetResolved       EventType = "bet_resolved"
	EventTypeUserRegistered    EventType = "user_registered"
	EventTypeInviteCodeCreated EventType = "invite_code_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BetPlacedEvent represents a new pending bet entering the ledger
type BetPlacedEvent struct {
	BetID      int64
	UserID     int64
	WeekNumber int
	OddsLocked int
	IsKingLock bool
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetDeletedEvent represents a pending bet withdrawn by its owner
type BetDeletedEvent struct {
	BetID  int64
	UserID int64
}

func (e BetDeletedEvent) Type() EventType {
	return EventTypeBetDeleted
}

// BetResolvedEvent represents a bet reaching a terminal state
type BetResolvedEvent struct {
	BetID         int64
	UserID        int64
	Status        models.BetStatus
	PointsAwarded *int
}

func (e BetResolvedEvent) Type() EventType {
	return EventTypeBetResolved
}

// UserRegisteredEvent represents a successful invite-gated registration
type UserRegisteredEvent struct {
	UserID     int64
	Username   string
	InviteCode string
}

func (e UserRegisteredEvent) Type() EventType {
	return EventTypeUserRegistered
}

// InviteCodeCreatedEvent represents a new registration token
type InviteCodeCreatedEvent struct {
	Code string
}

func (e InviteCodeCreatedEvent) Type() EventType {
	return EventTypeInviteCodeCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow subscriber never blocks a request.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the real bus only after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after successful DB commit; events
// are emitted on a background context so they outlive the request.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events. Called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
