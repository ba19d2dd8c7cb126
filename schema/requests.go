package schema

import "time"

// Session membership.

// JoinSessionRequest describes a request to join (or create) a session.
type JoinSessionRequest struct {
	SessionID SessionID
	Username  Username
}

// JoinSessionResponse reports the joined user and the session snapshot.
type JoinSessionResponse struct {
	User    UserSnapshot    `json:"user"`
	Session SessionSnapshot `json:"session"`
}

// LeaveSessionRequest describes a request to leave a session.
type LeaveSessionRequest struct {
	SessionID SessionID
	UserID    UserID
}

// LeaveSessionResponse reports the departed user snapshot.
type LeaveSessionResponse struct {
	User UserSnapshot `json:"user"`
}

// GetSessionRequest describes a request for a session snapshot.
type GetSessionRequest struct {
	SessionID SessionID
}

// GetSessionResponse reports the session snapshot.
type GetSessionResponse struct {
	Session SessionSnapshot `json:"session"`
}

// Document operations.

// SetCodeRequest describes a replacement of the shared code.
type SetCodeRequest struct {
	SessionID SessionID
	UserID    UserID
	Code      string
}

// SetCodeResponse reports the updated document.
type SetCodeResponse struct {
	Document DocumentSnapshot `json:"document"`
}

// SetLanguageRequest describes a replacement of the document language tag.
type SetLanguageRequest struct {
	SessionID SessionID
	UserID    UserID
	Language  LanguageID
}

// SetLanguageResponse reports the updated document.
type SetLanguageResponse struct {
	Document DocumentSnapshot `json:"document"`
}

// GetDocumentRequest describes a read of the shared document.
type GetDocumentRequest struct {
	SessionID SessionID
}

// GetDocumentResponse reports the current document.
type GetDocumentResponse struct {
	Document DocumentSnapshot `json:"document"`
}

// Event scheduling.

// CreateEventRequest describes a request to schedule an event.
type CreateEventRequest struct {
	SessionID    SessionID
	Creator      Username
	Title        string
	Description  string
	Date         time.Time
	Time         string
	Participants []Username
}

// CreateEventResponse reports the created event.
type CreateEventResponse struct {
	Event EventSnapshot `json:"event"`
}

// UpdateEventRequest describes a full replacement of an existing event.
type UpdateEventRequest struct {
	SessionID    SessionID
	Username     Username
	EventID      EventID
	Title        string
	Description  string
	Date         time.Time
	Time         string
	Participants []Username
}

// UpdateEventResponse reports the replaced event.
type UpdateEventResponse struct {
	Event EventSnapshot `json:"event"`
}

// RemoveEventRequest describes a deletion of an event by id.
type RemoveEventRequest struct {
	SessionID SessionID
	Username  Username
	EventID   EventID
}

// RemoveEventResponse reports whether an event was removed.
type RemoveEventResponse struct {
	Removed bool `json:"removed"`
}

// ListEventsRequest describes a read of the event collection.
type ListEventsRequest struct {
	SessionID SessionID
}

// ListEventsResponse reports events ordered by date and time.
type ListEventsResponse struct {
	Events []EventSnapshot `json:"events"`
}

// Execution.

// RunRequest submits the session's current document for execution.
type RunRequest struct {
	SessionID SessionID
	UserID    UserID
}

// RunResponse reports the execution result and the document that ran.
type RunResponse struct {
	Result   ExecutionResult  `json:"result"`
	Document DocumentSnapshot `json:"document"`
}

// ExecuteRequest submits an explicit code/language pair for execution.
type ExecuteRequest struct {
	SessionID SessionID
	UserID    UserID
	Code      string
	Language  LanguageID
}

// ExecuteResponse reports the execution result.
type ExecuteResponse struct {
	Result ExecutionResult `json:"result"`
}

// Console and history.

// GetConsoleRequest describes a read of the execution console.
type GetConsoleRequest struct {
	SessionID SessionID
	Limit     int
}

// GetConsoleResponse reports the console view.
type GetConsoleResponse struct {
	Console ConsoleSnapshot `json:"console"`
}

// ScrollConsoleRequest adjusts the console scroll offset.
type ScrollConsoleRequest struct {
	SessionID SessionID
	Delta     int
	Limit     int
}

// ScrollConsoleResponse reports the console view after scrolling.
type ScrollConsoleResponse struct {
	Console ConsoleSnapshot `json:"console"`
}

// GetHistoryRequest describes a read of the submission history.
type GetHistoryRequest struct {
	SessionID SessionID
}

// GetHistoryResponse reports recent submitted snippets, oldest first.
type GetHistoryResponse struct {
	Entries []string `json:"entries"`
}

// ListLanguagesRequest describes a read of the supported languages.
type ListLanguagesRequest struct{}

// ListLanguagesResponse reports language identifiers known to the
// handler registry, sorted.
type ListLanguagesResponse struct {
	Languages []LanguageID `json:"languages"`
}
