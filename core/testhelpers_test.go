package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pkt.systems/codetribe/schema"
)

// fakeRand returns queued values, cycling when exhausted.
type fakeRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (f *fakeRand) Float64() float64 {
	if len(f.floats) == 0 {
		return 0.5
	}
	v := f.floats[f.fi%len(f.floats)]
	f.fi++
	return v
}

func (f *fakeRand) IntN(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[f.ii%len(f.ints)] % n
	f.ii++
	return v
}

// fakeClock advances only when its sleep function runs, so simulated
// latency is observable without real waiting.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	return nil
}

func newTestDispatcher(cfg DispatcherConfig, rng RandSource) (*Dispatcher, *fakeClock) {
	clock := newFakeClock()
	d := NewDispatcher(cfg, DispatcherDeps{
		Rand:  rng,
		Now:   clock.Now,
		Sleep: clock.Sleep,
	})
	return d, clock
}

// captureSink records every event the service emits.
type captureSink struct {
	mu       sync.Mutex
	presence []schema.PresenceEvent
	document []schema.DocumentEvent
	schedule []schema.ScheduleEvent
	console  []schema.ConsoleEvent
	runs     []schema.RunEvent
}

func (c *captureSink) OnPresence(event schema.PresenceEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presence = append(c.presence, event)
}

func (c *captureSink) OnDocument(event schema.DocumentEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.document = append(c.document, event)
}

func (c *captureSink) OnSchedule(event schema.ScheduleEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedule = append(c.schedule, event)
}

func (c *captureSink) OnConsole(event schema.ConsoleEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.console = append(c.console, event)
}

func (c *captureSink) OnRun(event schema.RunEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, event)
}

// sequentialEventIDs yields ev-1, ev-2, ... for deterministic event ids.
func sequentialEventIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("ev-%d", n)
	}
}

func newTestService(t *testing.T, sink EventSink, dispatcher *Dispatcher) Service {
	t.Helper()
	svc, err := NewService(schema.ServiceConfig{}, ServiceDeps{
		Dispatcher: dispatcher,
		EventSink:  sink,
		NewEventID: sequentialEventIDs(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func joinUser(t *testing.T, svc Service, sessionID schema.SessionID, name schema.Username) schema.UserSnapshot {
	t.Helper()
	resp, err := svc.JoinSession(context.Background(), schema.JoinSessionRequest{
		SessionID: sessionID,
		Username:  name,
	})
	if err != nil {
		t.Fatalf("join session: %v", err)
	}
	return resp.User
}
