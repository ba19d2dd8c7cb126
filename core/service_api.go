package core

import (
	"context"

	"pkt.systems/codetribe/schema"
)

// Service is the transport-agnostic API for managing code sessions,
// shared documents, scheduled events, and execution.
type Service interface {
	JoinSession(ctx context.Context, req schema.JoinSessionRequest) (schema.JoinSessionResponse, error)
	LeaveSession(ctx context.Context, req schema.LeaveSessionRequest) (schema.LeaveSessionResponse, error)
	GetSession(ctx context.Context, req schema.GetSessionRequest) (schema.GetSessionResponse, error)
	SetCode(ctx context.Context, req schema.SetCodeRequest) (schema.SetCodeResponse, error)
	SetLanguage(ctx context.Context, req schema.SetLanguageRequest) (schema.SetLanguageResponse, error)
	GetDocument(ctx context.Context, req schema.GetDocumentRequest) (schema.GetDocumentResponse, error)
	CreateEvent(ctx context.Context, req schema.CreateEventRequest) (schema.CreateEventResponse, error)
	UpdateEvent(ctx context.Context, req schema.UpdateEventRequest) (schema.UpdateEventResponse, error)
	RemoveEvent(ctx context.Context, req schema.RemoveEventRequest) (schema.RemoveEventResponse, error)
	ListEvents(ctx context.Context, req schema.ListEventsRequest) (schema.ListEventsResponse, error)
	Run(ctx context.Context, req schema.RunRequest) (schema.RunResponse, error)
	Execute(ctx context.Context, req schema.ExecuteRequest) (schema.ExecuteResponse, error)
	GetConsole(ctx context.Context, req schema.GetConsoleRequest) (schema.GetConsoleResponse, error)
	ScrollConsole(ctx context.Context, req schema.ScrollConsoleRequest) (schema.ScrollConsoleResponse, error)
	GetHistory(ctx context.Context, req schema.GetHistoryRequest) (schema.GetHistoryResponse, error)
	ListLanguages(ctx context.Context, req schema.ListLanguagesRequest) (schema.ListLanguagesResponse, error)
}
