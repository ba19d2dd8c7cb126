package schema

// SessionID identifies a collaborative coding session.
type SessionID string

// UserID identifies a participant in a session.
type UserID string

// Username is the human-facing participant name, unique within a session.
type Username string

// EventID identifies a scheduled event.
type EventID string

// LanguageID identifies an editor language.
type LanguageID string

// SessionStatus describes whether a session is running code.
type SessionStatus string

const (
	// SessionStatusIdle indicates no run is in flight.
	SessionStatusIdle SessionStatus = "idle"
	// SessionStatusRunning indicates a run is in flight.
	SessionStatusRunning SessionStatus = "running"
)
