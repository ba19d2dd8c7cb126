package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pkt.systems/codetribe/schema"
)

func TestRunExecutesCurrentDocument(t *testing.T) {
	sink := &captureSink{}
	// Latency 0.5, fault 0.99 (no injection), output index 0.
	d, _ := newTestDispatcher(DispatcherConfig{}, &fakeRand{floats: []float64{0.5, 0.99}, ints: []int{0}})
	svc := newTestService(t, sink, d)
	alice := joinUser(t, svc, "room-1", "alice")

	if _, err := svc.SetCode(context.Background(), schema.SetCodeRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Code:      "print('hi')",
	}); err != nil {
		t.Fatalf("set code: %v", err)
	}
	if _, err := svc.SetLanguage(context.Background(), schema.SetLanguageRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Language:  "python",
	}); err != nil {
		t.Fatalf("set language: %v", err)
	}

	resp, err := svc.Run(context.Background(), schema.RunRequest{SessionID: "room-1", UserID: alice.ID})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !resp.Result.Success {
		t.Fatalf("expected success, got %+v", resp.Result)
	}
	if resp.Result.Output != pythonOutputs[0] {
		t.Fatalf("unexpected output %q", resp.Result.Output)
	}
	if resp.Document.Code != "print('hi')" {
		t.Fatalf("response document should carry the code that ran")
	}

	if len(sink.runs) != 2 {
		t.Fatalf("expected run start and completion events, got %d", len(sink.runs))
	}
	if sink.runs[0].Status != schema.SessionStatusRunning || sink.runs[0].Result != nil {
		t.Fatalf("unexpected start event %+v", sink.runs[0])
	}
	if sink.runs[1].Status != schema.SessionStatusIdle || sink.runs[1].Result == nil {
		t.Fatalf("unexpected completion event %+v", sink.runs[1])
	}

	console, err := svc.GetConsole(context.Background(), schema.GetConsoleRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get console: %v", err)
	}
	if len(console.Console.Lines) == 0 || console.Console.Lines[0] != "$ run python" {
		t.Fatalf("expected run header, got %v", console.Console.Lines)
	}
	last := console.Console.Lines[len(console.Console.Lines)-1]
	if !strings.HasPrefix(last, "[completed in ") {
		t.Fatalf("expected completion footer, got %q", last)
	}

	history, err := svc.GetHistory(context.Background(), schema.GetHistoryRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history.Entries) != 1 || history.Entries[0] != "print('hi')" {
		t.Fatalf("unexpected history %v", history.Entries)
	}
}

func TestRunRequiresMembership(t *testing.T) {
	d, _ := newTestDispatcher(DispatcherConfig{}, &fakeRand{})
	svc := newTestService(t, nil, d)
	joinUser(t, svc, "room-1", "alice")

	_, err := svc.Run(context.Background(), schema.RunRequest{SessionID: "room-1", UserID: "stranger"})
	if !errors.Is(err, schema.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestExecuteDoesNotTouchDocument(t *testing.T) {
	d, _ := newTestDispatcher(DispatcherConfig{}, &fakeRand{floats: []float64{0, 0.99}, ints: []int{1}})
	svc := newTestService(t, nil, d)
	alice := joinUser(t, svc, "room-1", "alice")

	resp, err := svc.Execute(context.Background(), schema.ExecuteRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Code:      `console.log("x")`,
		Language:  "JavaScript",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Result.Success || resp.Result.Output != javascriptOutputs[1] {
		t.Fatalf("unexpected result %+v", resp.Result)
	}

	doc, err := svc.GetDocument(context.Background(), schema.GetDocumentRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if doc.Document.Code != "" {
		t.Fatalf("execute must not mutate the shared document, got %q", doc.Document.Code)
	}
}

func TestRunRejectedWhileBusy(t *testing.T) {
	clock := newFakeClock()
	started := make(chan struct{})
	release := make(chan struct{})
	d := NewDispatcher(DispatcherConfig{}, DispatcherDeps{
		Rand: &fakeRand{floats: []float64{0, 0.99}},
		Now:  clock.Now,
		Sleep: func(ctx context.Context, delay time.Duration) error {
			close(started)
			<-release
			return nil
		},
	})
	svc := newTestService(t, nil, d)
	alice := joinUser(t, svc, "room-1", "alice")

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background(), schema.RunRequest{SessionID: "room-1", UserID: alice.ID})
		errCh <- err
	}()
	<-started

	// A second submission during the latency window is rejected, but
	// document edits keep flowing.
	_, err := svc.Run(context.Background(), schema.RunRequest{SessionID: "room-1", UserID: alice.ID})
	if !errors.Is(err, schema.ErrSessionBusy) {
		t.Fatalf("got %v, want ErrSessionBusy", err)
	}
	if _, err := svc.SetCode(context.Background(), schema.SetCodeRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Code:      "edited mid-run",
	}); err != nil {
		t.Fatalf("set code during run: %v", err)
	}

	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("run: %v", err)
	}

	doc, err := svc.GetDocument(context.Background(), schema.GetDocumentRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if doc.Document.Code != "edited mid-run" {
		t.Fatalf("expected mid-run edit to persist, got %q", doc.Document.Code)
	}
}

func TestScrollConsole(t *testing.T) {
	d, _ := newTestDispatcher(DispatcherConfig{}, &fakeRand{floats: []float64{0, 0.99}})
	svc := newTestService(t, nil, d)
	alice := joinUser(t, svc, "room-1", "alice")

	for i := 0; i < 3; i++ {
		if _, err := svc.Execute(context.Background(), schema.ExecuteRequest{
			SessionID: "room-1",
			UserID:    alice.ID,
			Code:      "select 1",
			Language:  "markdown",
		}); err != nil {
			t.Fatalf("execute: %v", err)
		}
	}

	resp, err := svc.ScrollConsole(context.Background(), schema.ScrollConsoleRequest{
		SessionID: "room-1",
		Delta:     2,
		Limit:     3,
	})
	if err != nil {
		t.Fatalf("scroll console: %v", err)
	}
	if resp.Console.AtBottom {
		t.Fatalf("expected scrolled view, got %+v", resp.Console)
	}
	if resp.Console.ScrollOffset != 2 {
		t.Fatalf("expected scroll offset 2, got %d", resp.Console.ScrollOffset)
	}

	resp, err = svc.ScrollConsole(context.Background(), schema.ScrollConsoleRequest{
		SessionID: "room-1",
		Delta:     -10,
		Limit:     3,
	})
	if err != nil {
		t.Fatalf("scroll console: %v", err)
	}
	if !resp.Console.AtBottom {
		t.Fatalf("expected bottom after scrolling down, got %+v", resp.Console)
	}
}

func TestHistorySkipsDuplicates(t *testing.T) {
	d, _ := newTestDispatcher(DispatcherConfig{}, &fakeRand{floats: []float64{0, 0.99}})
	svc := newTestService(t, nil, d)
	alice := joinUser(t, svc, "room-1", "alice")

	for i := 0; i < 2; i++ {
		if _, err := svc.Execute(context.Background(), schema.ExecuteRequest{
			SessionID: "room-1",
			UserID:    alice.ID,
			Code:      "same snippet",
			Language:  "markdown",
		}); err != nil {
			t.Fatalf("execute: %v", err)
		}
	}

	history, err := svc.GetHistory(context.Background(), schema.GetHistoryRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history.Entries) != 1 {
		t.Fatalf("expected duplicate to be skipped, got %v", history.Entries)
	}
}

func TestListLanguages(t *testing.T) {
	d, _ := newTestDispatcher(DispatcherConfig{}, &fakeRand{})
	svc := newTestService(t, nil, d)
	resp, err := svc.ListLanguages(context.Background(), schema.ListLanguagesRequest{})
	if err != nil {
		t.Fatalf("list languages: %v", err)
	}
	if len(resp.Languages) == 0 {
		t.Fatalf("expected languages")
	}
}
