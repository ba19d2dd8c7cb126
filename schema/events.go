package schema

// PresenceEventType distinguishes membership changes.
type PresenceEventType string

const (
	// PresenceJoined indicates a user joined the session.
	PresenceJoined PresenceEventType = "joined"
	// PresenceLeft indicates a user left the session.
	PresenceLeft PresenceEventType = "left"
)

// PresenceEvent reports a membership change plus the updated roster.
type PresenceEvent struct {
	SessionID SessionID         `json:"session_id"`
	Type      PresenceEventType `json:"type"`
	User      UserSnapshot      `json:"user"`
	Users     []UserSnapshot    `json:"users"`
}

// DocumentEventType distinguishes document mutations.
type DocumentEventType string

const (
	// DocumentCodeUpdated indicates the shared code changed.
	DocumentCodeUpdated DocumentEventType = "code_updated"
	// DocumentLanguageChanged indicates the language tag changed.
	DocumentLanguageChanged DocumentEventType = "language_changed"
)

// DocumentEvent reports a mutation of the shared document.
type DocumentEvent struct {
	SessionID SessionID         `json:"session_id"`
	Type      DocumentEventType `json:"type"`
	UserID    UserID            `json:"user_id"`
	Document  DocumentSnapshot  `json:"document"`
}

// ScheduleEventType distinguishes event-collection mutations.
type ScheduleEventType string

const (
	// ScheduleCreated indicates an event was added.
	ScheduleCreated ScheduleEventType = "created"
	// ScheduleUpdated indicates an event was replaced.
	ScheduleUpdated ScheduleEventType = "updated"
	// ScheduleRemoved indicates an event was deleted.
	ScheduleRemoved ScheduleEventType = "removed"
)

// ScheduleEvent reports a mutation of the scheduled-event collection.
type ScheduleEvent struct {
	SessionID SessionID         `json:"session_id"`
	Type      ScheduleEventType `json:"type"`
	Event     EventSnapshot     `json:"event"`
}

// ConsoleEvent carries lines appended to the shared execution console.
type ConsoleEvent struct {
	SessionID SessionID `json:"session_id"`
	Lines     []string  `json:"lines"`
}

// RunEvent reports run lifecycle for a session.
type RunEvent struct {
	SessionID SessionID        `json:"session_id"`
	UserID    UserID           `json:"user_id"`
	Status    SessionStatus    `json:"status"`
	Result    *ExecutionResult `json:"result,omitempty"`
}
