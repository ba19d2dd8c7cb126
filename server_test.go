package codetribe

import (
	"context"
	"testing"
	"time"

	"pkt.systems/codetribe/core"
	"pkt.systems/codetribe/internal/eventbus"
	"pkt.systems/codetribe/schema"
)

func TestNewRequiresEnabledComponent(t *testing.T) {
	if _, err := New(ServerConfig{}, ServerDeps{}); err == nil {
		t.Fatalf("expected error when no services enabled")
	}
}

func TestServerStopCancelsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := &compositeServer{
		ctx:     ctx,
		cancel:  cancel,
		started: true,
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := server.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected server context to be canceled")
	}
}

type countingSink struct {
	presence int
	document int
	schedule int
	console  int
	runs     int
}

func (c *countingSink) OnPresence(schema.PresenceEvent) { c.presence++ }
func (c *countingSink) OnDocument(schema.DocumentEvent) { c.document++ }
func (c *countingSink) OnSchedule(schema.ScheduleEvent) { c.schedule++ }
func (c *countingSink) OnConsole(schema.ConsoleEvent)   { c.console++ }
func (c *countingSink) OnRun(schema.RunEvent)           { c.runs++ }

func TestEventFanoutDeliversToAllSinks(t *testing.T) {
	first := &countingSink{}
	second := &countingSink{}
	fanout := eventFanout{sinks: []core.EventSink{first, nil, second}}

	fanout.OnPresence(schema.PresenceEvent{SessionID: "standup"})
	fanout.OnDocument(schema.DocumentEvent{SessionID: "standup"})
	fanout.OnSchedule(schema.ScheduleEvent{SessionID: "standup"})
	fanout.OnConsole(schema.ConsoleEvent{SessionID: "standup"})
	fanout.OnRun(schema.RunEvent{SessionID: "standup"})

	for _, sink := range []*countingSink{first, second} {
		if sink.presence != 1 || sink.document != 1 || sink.schedule != 1 || sink.console != 1 || sink.runs != 1 {
			t.Fatalf("fanout delivery incomplete: %+v", sink)
		}
	}
}

func TestServerBusReceivesServiceEvents(t *testing.T) {
	server, err := New(ServerConfig{}, ServerDeps{}, WithEventBus())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bus := server.Events()
	if bus == nil {
		t.Fatalf("expected event bus")
	}
	ch, unsubscribe := bus.Subscribe("standup")
	defer unsubscribe()

	if _, err := server.Service().JoinSession(context.Background(), schema.JoinSessionRequest{
		SessionID: "standup",
		Username:  "alice",
	}); err != nil {
		t.Fatalf("JoinSession: %v", err)
	}

	select {
	case event := <-ch:
		if event.Type != eventbus.EventPresence || event.Presence.Type != schema.PresenceJoined {
			t.Fatalf("unexpected bus event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for presence event")
	}
}
