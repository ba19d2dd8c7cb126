package httpapi

import (
	"sync"
	"testing"

	"pkt.systems/codetribe/schema"
)

func TestHubPublishAndReplay(t *testing.T) {
	hub := NewHub(10)
	ch, unsubscribe, last, backlog := hub.Subscribe("standup")
	defer unsubscribe()
	if last != 0 || len(backlog) != 0 {
		t.Fatalf("expected empty hub, got last=%d backlog=%d", last, len(backlog))
	}

	hub.OnConsole(schema.ConsoleEvent{SessionID: "standup", Lines: []string{"one"}})
	hub.OnConsole(schema.ConsoleEvent{SessionID: "standup", Lines: []string{"two"}})

	first := <-ch
	second := <-ch
	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("unexpected sequence numbers: %d, %d", first.Seq, second.Seq)
	}
	if first.Type != "console" {
		t.Fatalf("unexpected event type: %q", first.Type)
	}

	replay := hub.Replay("standup", 1)
	if len(replay) != 1 || replay[0].Seq != 2 {
		t.Fatalf("unexpected replay: %+v", replay)
	}
	if got := hub.Replay("standup", 2); len(got) != 0 {
		t.Fatalf("expected empty replay, got %d events", len(got))
	}
}

func TestHubScopesSessions(t *testing.T) {
	hub := NewHub(10)
	ch, unsubscribe, _, _ := hub.Subscribe("standup")
	defer unsubscribe()

	hub.OnPresence(schema.PresenceEvent{SessionID: "other", Type: schema.PresenceJoined})

	select {
	case event := <-ch:
		t.Fatalf("unexpected cross-session event: %+v", event)
	default:
	}
}

func TestHubPublishDuringUnsubscribe(t *testing.T) {
	hub := NewHub(10)
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					hub.OnConsole(schema.ConsoleEvent{SessionID: "standup", Lines: []string{"tick"}})
				}
			}
		}()
	}

	// Churning subscribers while publishers run must not panic with a
	// send on a closed channel.
	for i := 0; i < 500; i++ {
		ch, unsubscribe, _, _ := hub.Subscribe("standup")
		select {
		case <-ch:
		default:
		}
		unsubscribe()
	}
	close(stop)
	wg.Wait()
}

func TestHubSequenceIsPerSession(t *testing.T) {
	hub := NewHub(10)
	hub.OnConsole(schema.ConsoleEvent{SessionID: "a", Lines: []string{"x"}})
	hub.OnConsole(schema.ConsoleEvent{SessionID: "a", Lines: []string{"y"}})
	hub.OnConsole(schema.ConsoleEvent{SessionID: "b", Lines: []string{"z"}})

	if replay := hub.Replay("b", 0); len(replay) != 1 || replay[0].Seq != 1 {
		t.Fatalf("expected per-session sequence, got %+v", replay)
	}
}
