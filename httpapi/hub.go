package httpapi

import (
	"context"
	"sync"
	"time"

	"pkt.systems/codetribe/internal/logx"
	"pkt.systems/codetribe/schema"
)

// StreamEvent is sent to SSE clients.
type StreamEvent struct {
	Seq       uint64                `json:"seq"`
	Type      string                `json:"type"`
	Presence  *schema.PresenceEvent `json:"presence,omitempty"`
	Document  *schema.DocumentEvent `json:"document,omitempty"`
	Schedule  *schema.ScheduleEvent `json:"schedule,omitempty"`
	Lines     []string              `json:"lines,omitempty"`
	Run       *schema.RunEvent      `json:"run,omitempty"`
	Snapshot  *SnapshotPayload      `json:"snapshot,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// SnapshotPayload seeds client state on connect.
type SnapshotPayload struct {
	Session   schema.SessionSnapshot `json:"session"`
	Console   schema.ConsoleSnapshot `json:"console"`
	History   []string               `json:"history"`
	Languages []schema.LanguageID    `json:"languages"`
}

// Hub broadcasts events per code session.
type Hub struct {
	mu          sync.Mutex
	sessions    map[schema.SessionID]*sessionHub
	historySize int
}

// NewHub constructs a hub with the given history size.
func NewHub(historySize int) *Hub {
	if historySize <= 0 {
		historySize = 1000
	}
	return &Hub{
		sessions:    make(map[schema.SessionID]*sessionHub),
		historySize: historySize,
	}
}

// OnPresence implements core.EventSink.
func (h *Hub) OnPresence(event schema.PresenceEvent) {
	log := logx.WithSession(context.Background(), event.SessionID)
	log.Trace("hub presence event", "type", event.Type, "users", len(event.Users))
	e := event
	h.publish(event.SessionID, StreamEvent{
		Type:      "presence",
		Presence:  &e,
		Timestamp: time.Now(),
	})
}

// OnDocument implements core.EventSink.
func (h *Hub) OnDocument(event schema.DocumentEvent) {
	log := logx.WithSession(context.Background(), event.SessionID)
	log.Trace("hub document event", "type", event.Type)
	e := event
	h.publish(event.SessionID, StreamEvent{
		Type:      "document",
		Document:  &e,
		Timestamp: time.Now(),
	})
}

// OnSchedule implements core.EventSink.
func (h *Hub) OnSchedule(event schema.ScheduleEvent) {
	log := logx.WithSession(context.Background(), event.SessionID)
	log.Trace("hub schedule event", "type", event.Type, "event", event.Event.ID)
	e := event
	h.publish(event.SessionID, StreamEvent{
		Type:      "schedule",
		Schedule:  &e,
		Timestamp: time.Now(),
	})
}

// OnConsole implements core.EventSink.
func (h *Hub) OnConsole(event schema.ConsoleEvent) {
	log := logx.WithSession(context.Background(), event.SessionID)
	log.Trace("hub console event", "lines", len(event.Lines))
	h.publish(event.SessionID, StreamEvent{
		Type:      "console",
		Lines:     event.Lines,
		Timestamp: time.Now(),
	})
}

// OnRun implements core.EventSink.
func (h *Hub) OnRun(event schema.RunEvent) {
	log := logx.WithSession(context.Background(), event.SessionID)
	log.Trace("hub run event", "status", event.Status)
	e := event
	h.publish(event.SessionID, StreamEvent{
		Type:      "run",
		Run:       &e,
		Timestamp: time.Now(),
	})
}

// Subscribe registers a subscriber for a code session.
func (h *Hub) Subscribe(sessionID schema.SessionID) (<-chan StreamEvent, func(), uint64, []StreamEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sh := h.getOrCreateSessionHubLocked(sessionID)
	ch := make(chan StreamEvent, 256)
	sh.subs[ch] = struct{}{}
	history := append([]StreamEvent(nil), sh.history...)
	seq := sh.seq
	log := logx.WithSession(context.Background(), sessionID)
	log.Info("hub subscribe", "subs", len(sh.subs), "history", len(history))
	unsub := func() {
		// Close under the lock so publish, which also sends under the
		// lock, cannot hit a closed channel.
		h.mu.Lock()
		if _, ok := sh.subs[ch]; ok {
			delete(sh.subs, ch)
			close(ch)
		}
		remaining := len(sh.subs)
		h.mu.Unlock()
		log.Info("hub unsubscribe", "subs", remaining)
	}
	return ch, unsub, seq, history
}

// Replay returns events after the provided seq.
func (h *Hub) Replay(sessionID schema.SessionID, after uint64) []StreamEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	sh := h.sessions[sessionID]
	if sh == nil {
		return nil
	}
	events := make([]StreamEvent, 0, len(sh.history))
	for _, event := range sh.history {
		if event.Seq > after {
			events = append(events, event)
		}
	}
	logx.WithSession(context.Background(), sessionID).Debug("hub replay", "after", after, "count", len(events))
	return events
}

func (h *Hub) publish(sessionID schema.SessionID, event StreamEvent) {
	h.mu.Lock()
	sh := h.getOrCreateSessionHubLocked(sessionID)
	sh.seq++
	event.Seq = sh.seq
	sh.history = append(sh.history, event)
	if len(sh.history) > h.historySize {
		sh.history = sh.history[len(sh.history)-h.historySize:]
	}
	// Sends happen under the lock. They never block (select/default)
	// and unsubscribe closes channels under the same lock.
	dropped := 0
	for sub := range sh.subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	h.mu.Unlock()
	if dropped > 0 {
		logx.WithSession(context.Background(), sessionID).Warn("hub event dropped", "type", event.Type, "dropped", dropped)
	}
}

func (h *Hub) getOrCreateSessionHubLocked(sessionID schema.SessionID) *sessionHub {
	sh := h.sessions[sessionID]
	if sh == nil {
		sh = &sessionHub{
			subs: make(map[chan StreamEvent]struct{}),
		}
		h.sessions[sessionID] = sh
	}
	return sh
}

type sessionHub struct {
	seq     uint64
	history []StreamEvent
	subs    map[chan StreamEvent]struct{}
}
