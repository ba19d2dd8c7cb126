package eventbus

import (
	"context"
	"sync"

	"pkt.systems/codetribe/schema"
	"pkt.systems/pslog"
)

// EventType identifies the event payload.
type EventType string

const (
	// EventPresence carries membership changes.
	EventPresence EventType = "presence"
	// EventDocument carries shared document updates.
	EventDocument EventType = "document"
	// EventSchedule carries scheduled-event collection changes.
	EventSchedule EventType = "schedule"
	// EventConsole carries execution console lines.
	EventConsole EventType = "console"
	// EventRun carries run lifecycle updates.
	EventRun EventType = "run"
)

// Event represents a client-facing event emitted by the core service.
type Event struct {
	Type     EventType
	Presence schema.PresenceEvent
	Document schema.DocumentEvent
	Schedule schema.ScheduleEvent
	Console  schema.ConsoleEvent
	Run      schema.RunEvent
}

// Bus fanouts events to per-session subscribers.
type Bus struct {
	mu    sync.Mutex
	subs  map[schema.SessionID]map[chan Event]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[schema.SessionID]map[chan Event]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber for the session and returns a channel + cancel.
func (b *Bus) Subscribe(sessionID schema.SessionID) (<-chan Event, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan Event, b.depth)
	b.mu.Lock()
	sessionSubs := b.subs[sessionID]
	if sessionSubs == nil {
		sessionSubs = make(map[chan Event]struct{})
		b.subs[sessionID] = sessionSubs
	}
	sessionSubs[ch] = struct{}{}
	count := len(sessionSubs)
	b.mu.Unlock()
	if b.log != nil {
		b.log.With("session", sessionID).Debug("eventbus subscribe", "subs", count)
	}
	return ch, func() {
		// Closing under the lock keeps publish, which sends under the
		// same lock, from hitting a closed channel.
		b.mu.Lock()
		if subs := b.subs[sessionID]; subs != nil {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(b.subs, sessionID)
			}
		}
		b.mu.Unlock()
		if b.log != nil {
			b.log.With("session", sessionID).Debug("eventbus unsubscribe")
		}
	}
}

// OnPresence publishes a presence event.
func (b *Bus) OnPresence(event schema.PresenceEvent) {
	b.publish(event.SessionID, Event{Type: EventPresence, Presence: event})
}

// OnDocument publishes a document event.
func (b *Bus) OnDocument(event schema.DocumentEvent) {
	b.publish(event.SessionID, Event{Type: EventDocument, Document: event})
}

// OnSchedule publishes a schedule event.
func (b *Bus) OnSchedule(event schema.ScheduleEvent) {
	b.publish(event.SessionID, Event{Type: EventSchedule, Schedule: event})
}

// OnConsole publishes a console event.
func (b *Bus) OnConsole(event schema.ConsoleEvent) {
	b.publish(event.SessionID, Event{Type: EventConsole, Console: event})
}

// OnRun publishes a run event.
func (b *Bus) OnRun(event schema.RunEvent) {
	b.publish(event.SessionID, Event{Type: EventRun, Run: event})
}

func (b *Bus) publish(sessionID schema.SessionID, event Event) {
	if b == nil {
		return
	}
	// Sends stay under the lock: they never block (select/default),
	// and unsubscribe closes channels under the same lock.
	dropped := 0
	b.mu.Lock()
	for sub := range b.subs[sessionID] {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	b.mu.Unlock()
	if dropped > 0 && b.log != nil {
		b.log.With("session", sessionID).Trace("eventbus dropped", "count", dropped)
	}
}
