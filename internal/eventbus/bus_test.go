package eventbus

import (
	"sync"
	"testing"
	"time"

	"pkt.systems/codetribe/schema"
)

func TestSubscribeAndPublish(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("room-1")
	defer cancel()

	event := schema.ConsoleEvent{SessionID: "room-1", Lines: []string{"hi"}}
	bus.OnConsole(event)

	select {
	case got := <-ch:
		if got.Type != EventConsole {
			t.Fatalf("expected console event, got %v", got.Type)
		}
		if got.Console.SessionID != event.SessionID || len(got.Console.Lines) != 1 {
			t.Fatalf("unexpected payload: %+v", got.Console)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for event")
	}
}

func TestPublishScopedToSession(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("room-1")
	defer cancel()

	bus.OnPresence(schema.PresenceEvent{SessionID: "room-2", Type: schema.PresenceJoined})
	select {
	case got := <-ch:
		t.Fatalf("unexpected event for other session: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe("room-1")
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed")
	}
}

func TestPublishDuringUnsubscribe(t *testing.T) {
	bus := New(nil)
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
					bus.OnConsole(schema.ConsoleEvent{SessionID: "room-1", Lines: []string{"tick"}})
				}
			}
		}()
	}

	// Subscriber churn under concurrent publishes must not panic with a
	// send on a closed channel.
	for i := 0; i < 500; i++ {
		ch, cancel := bus.Subscribe("room-1")
		select {
		case <-ch:
		default:
		}
		cancel()
	}
	close(stop)
	wg.Wait()
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	bus := New(nil)
	bus.depth = 1
	_, cancel := bus.Subscribe("room-1")
	defer cancel()

	var sendCh chan Event
	bus.mu.Lock()
	for ch := range bus.subs["room-1"] {
		sendCh = ch
		break
	}
	bus.mu.Unlock()
	if sendCh == nil {
		t.Fatalf("expected subscriber channel")
	}
	sendCh <- Event{Type: EventConsole}
	done := make(chan struct{})
	go func() {
		bus.OnConsole(schema.ConsoleEvent{SessionID: "room-1"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("publish blocked on full channel")
	}
}
