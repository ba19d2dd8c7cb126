package core

import (
	"context"
	"errors"
	"testing"

	"pkt.systems/codetribe/schema"
)

func TestJoinSessionCreatesSessionAndAssignsColor(t *testing.T) {
	sink := &captureSink{}
	svc := newTestService(t, sink, nil)

	alice := joinUser(t, svc, "room-1", "alice")
	if alice.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if alice.Color != schema.DefaultUserColors[0] {
		t.Fatalf("expected first palette color, got %q", alice.Color)
	}
	bob := joinUser(t, svc, "room-1", "bob")
	if bob.Color != schema.DefaultUserColors[1] {
		t.Fatalf("expected second palette color, got %q", bob.Color)
	}

	resp, err := svc.GetSession(context.Background(), schema.GetSessionRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(resp.Session.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp.Session.Users))
	}
	if resp.Session.Document.Language != schema.DefaultLanguage {
		t.Fatalf("expected default language, got %q", resp.Session.Document.Language)
	}
	if resp.Session.Status != schema.SessionStatusIdle {
		t.Fatalf("expected idle status, got %q", resp.Session.Status)
	}

	if len(sink.presence) != 2 {
		t.Fatalf("expected 2 presence events, got %d", len(sink.presence))
	}
	if sink.presence[0].Type != schema.PresenceJoined || len(sink.presence[1].Users) != 2 {
		t.Fatalf("unexpected presence events: %+v", sink.presence)
	}
}

func TestJoinSessionRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t, nil, nil)
	joinUser(t, svc, "room-1", "alice")
	_, err := svc.JoinSession(context.Background(), schema.JoinSessionRequest{
		SessionID: "room-1",
		Username:  " alice ",
	})
	if !errors.Is(err, schema.ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
	// The same name is free in another session.
	joinUser(t, svc, "room-2", "alice")
}

func TestLeaveSessionFreesUsername(t *testing.T) {
	sink := &captureSink{}
	svc := newTestService(t, sink, nil)
	alice := joinUser(t, svc, "room-1", "alice")

	resp, err := svc.LeaveSession(context.Background(), schema.LeaveSessionRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
	})
	if err != nil {
		t.Fatalf("leave session: %v", err)
	}
	if resp.User.Username != "alice" {
		t.Fatalf("unexpected departed user %+v", resp.User)
	}
	if len(sink.presence) != 2 || sink.presence[1].Type != schema.PresenceLeft {
		t.Fatalf("expected leave presence event, got %+v", sink.presence)
	}

	// Name can be reused after leaving.
	joinUser(t, svc, "room-1", "alice")

	_, err = svc.LeaveSession(context.Background(), schema.LeaveSessionRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
	})
	if !errors.Is(err, schema.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestGetSessionUnknown(t *testing.T) {
	svc := newTestService(t, nil, nil)
	_, err := svc.GetSession(context.Background(), schema.GetSessionRequest{SessionID: "missing"})
	if !errors.Is(err, schema.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestSetCodeLastWriteWins(t *testing.T) {
	sink := &captureSink{}
	svc := newTestService(t, sink, nil)
	alice := joinUser(t, svc, "room-1", "alice")
	bob := joinUser(t, svc, "room-1", "bob")

	if _, err := svc.SetCode(context.Background(), schema.SetCodeRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Code:      "print('a')",
	}); err != nil {
		t.Fatalf("set code: %v", err)
	}
	resp, err := svc.SetCode(context.Background(), schema.SetCodeRequest{
		SessionID: "room-1",
		UserID:    bob.ID,
		Code:      "print('b')",
	})
	if err != nil {
		t.Fatalf("set code: %v", err)
	}
	if resp.Document.Code != "print('b')" || resp.Document.UpdatedBy != bob.ID {
		t.Fatalf("unexpected document %+v", resp.Document)
	}

	docResp, err := svc.GetDocument(context.Background(), schema.GetDocumentRequest{SessionID: "room-1"})
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if docResp.Document.Code != "print('b')" {
		t.Fatalf("expected last write to win, got %q", docResp.Document.Code)
	}
	if len(sink.document) != 2 || sink.document[1].Type != schema.DocumentCodeUpdated {
		t.Fatalf("unexpected document events %+v", sink.document)
	}
}

func TestSetCodeRejectsNonMembers(t *testing.T) {
	svc := newTestService(t, nil, nil)
	joinUser(t, svc, "room-1", "alice")
	_, err := svc.SetCode(context.Background(), schema.SetCodeRequest{
		SessionID: "room-1",
		UserID:    "stranger",
		Code:      "x",
	})
	if !errors.Is(err, schema.ErrUserNotFound) {
		t.Fatalf("got %v, want ErrUserNotFound", err)
	}
}

func TestSetCodeRejectsOversizedPayload(t *testing.T) {
	svc, err := NewService(schema.ServiceConfig{MaxCodeBytes: 8}, ServiceDeps{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	alice := joinUser(t, svc, "room-1", "alice")
	_, err = svc.SetCode(context.Background(), schema.SetCodeRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Code:      "123456789",
	})
	if !errors.Is(err, schema.ErrCodeTooLarge) {
		t.Fatalf("got %v, want ErrCodeTooLarge", err)
	}
}

func TestSetLanguageNormalizes(t *testing.T) {
	sink := &captureSink{}
	svc := newTestService(t, sink, nil)
	alice := joinUser(t, svc, "room-1", "alice")

	resp, err := svc.SetLanguage(context.Background(), schema.SetLanguageRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Language:  " Python ",
	})
	if err != nil {
		t.Fatalf("set language: %v", err)
	}
	if resp.Document.Language != "python" {
		t.Fatalf("expected normalized language, got %q", resp.Document.Language)
	}
	if len(sink.document) != 1 || sink.document[0].Type != schema.DocumentLanguageChanged {
		t.Fatalf("unexpected document events %+v", sink.document)
	}

	_, err = svc.SetLanguage(context.Background(), schema.SetLanguageRequest{
		SessionID: "room-1",
		UserID:    alice.ID,
		Language:  "   ",
	})
	if !errors.Is(err, schema.ErrInvalidLanguage) {
		t.Fatalf("got %v, want ErrInvalidLanguage", err)
	}
}
