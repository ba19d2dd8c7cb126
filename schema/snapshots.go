package schema

import "time"

// UserSnapshot is a read-only view of a session participant.
type UserSnapshot struct {
	ID       UserID   `json:"id"`
	Username Username `json:"username"`
	Color    string   `json:"color"`
}

// DocumentSnapshot is a read-only view of the shared document.
type DocumentSnapshot struct {
	Code      string     `json:"code"`
	Language  LanguageID `json:"language"`
	UpdatedBy UserID     `json:"updated_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// EventSnapshot is a read-only view of a scheduled event.
type EventSnapshot struct {
	ID           EventID    `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Date         time.Time  `json:"date"`
	Time         string     `json:"time"`
	CreatedBy    Username   `json:"created_by"`
	Participants []Username `json:"participants"`
}

// SessionSnapshot is a read-only view of session state for transports.
type SessionSnapshot struct {
	ID       SessionID        `json:"id"`
	Users    []UserSnapshot   `json:"users"`
	Document DocumentSnapshot `json:"document"`
	Events   []EventSnapshot  `json:"events"`
	Status   SessionStatus    `json:"status"`
}

// ConsoleSnapshot represents the current execution console view.
type ConsoleSnapshot struct {
	SessionID    SessionID `json:"session_id"`
	Lines        []string  `json:"lines"`
	TotalLines   int       `json:"total_lines"`
	ScrollOffset int       `json:"scroll_offset"`
	AtBottom     bool      `json:"at_bottom"`
}
