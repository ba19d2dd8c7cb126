package core

import (
	"sort"
	"time"

	"pkt.systems/codetribe/schema"
)

// session tracks the state of a single collaborative code session.
type session struct {
	ID       schema.SessionID
	users    map[schema.UserID]*user
	order    []schema.UserID
	document document
	events   map[schema.EventID]*scheduledEvent
	console  *console
	history  *historyBuffer
	running  bool
	colorIdx int
}

type user struct {
	ID    schema.UserID
	Name  schema.Username
	Color string
}

// document is the shared editor state. Writes are last-write-wins.
type document struct {
	Code      string
	Language  schema.LanguageID
	UpdatedBy schema.UserID
	UpdatedAt time.Time
}

type scheduledEvent struct {
	ID           schema.EventID
	Title        string
	Description  string
	Date         time.Time
	Time         string
	CreatedBy    schema.Username
	Participants []schema.Username
}

func newSession(id schema.SessionID, cfg schema.ServiceConfig) *session {
	return &session{
		ID:      id,
		users:   make(map[schema.UserID]*user),
		events:  make(map[schema.EventID]*scheduledEvent),
		console: newConsole(cfg.ConsoleMaxLines),
		history: newHistory(cfg.HistoryMax),
		document: document{
			Language: cfg.DefaultLanguage,
		},
	}
}

func (s *session) userByName(name schema.Username) *user {
	for _, id := range s.order {
		if u := s.users[id]; u != nil && u.Name == name {
			return u
		}
	}
	return nil
}

func (s *session) addUser(u *user) {
	s.users[u.ID] = u
	s.order = append(s.order, u.ID)
}

func (s *session) removeUser(id schema.UserID) *user {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	delete(s.users, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return u
}

func (s *session) nextColor(palette []string) string {
	if len(palette) == 0 {
		return ""
	}
	color := palette[s.colorIdx%len(palette)]
	s.colorIdx++
	return color
}

func (s *session) status() schema.SessionStatus {
	if s.running {
		return schema.SessionStatusRunning
	}
	return schema.SessionStatusIdle
}

// userSnapshots returns users in join order.
func (s *session) userSnapshots() []schema.UserSnapshot {
	users := make([]schema.UserSnapshot, 0, len(s.order))
	for _, id := range s.order {
		if u := s.users[id]; u != nil {
			users = append(users, u.snapshot())
		}
	}
	return users
}

// eventSnapshots returns events ordered by date, wall time, then id.
func (s *session) eventSnapshots() []schema.EventSnapshot {
	events := make([]schema.EventSnapshot, 0, len(s.events))
	for _, ev := range s.events {
		events = append(events, ev.snapshot())
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].ID < events[j].ID
	})
	return events
}

// Snapshot returns a transport-friendly view of the session.
func (s *session) Snapshot() schema.SessionSnapshot {
	return schema.SessionSnapshot{
		ID:       s.ID,
		Users:    s.userSnapshots(),
		Document: s.document.snapshot(),
		Events:   s.eventSnapshots(),
		Status:   s.status(),
	}
}

func (u *user) snapshot() schema.UserSnapshot {
	return schema.UserSnapshot{
		ID:       u.ID,
		Username: u.Name,
		Color:    u.Color,
	}
}

func documentFromSnapshot(snap schema.DocumentSnapshot) document {
	return document{
		Code:      snap.Code,
		Language:  snap.Language,
		UpdatedBy: snap.UpdatedBy,
		UpdatedAt: snap.UpdatedAt,
	}
}

func (d document) snapshot() schema.DocumentSnapshot {
	return schema.DocumentSnapshot{
		Code:      d.Code,
		Language:  d.Language,
		UpdatedBy: d.UpdatedBy,
		UpdatedAt: d.UpdatedAt,
	}
}

func (e *scheduledEvent) snapshot() schema.EventSnapshot {
	return schema.EventSnapshot{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Time:         e.Time,
		CreatedBy:    e.CreatedBy,
		Participants: append([]schema.Username(nil), e.Participants...),
	}
}
