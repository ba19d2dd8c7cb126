package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pkt.systems/codetribe/internal/logx"
	"pkt.systems/codetribe/schema"
)

// validateEventFields checks the common create/update fields and
// returns the normalized title, wall time, and participants.
func validateEventFields(title string, date time.Time, wallTime string, creator schema.Username, participants []schema.Username) (string, string, []schema.Username, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", nil, schema.ErrEmptyTitle
	}
	if date.IsZero() {
		return "", "", nil, schema.ErrMissingDate
	}
	normalized, err := schema.NormalizeEventTime(wallTime)
	if err != nil {
		return "", "", nil, err
	}
	if len(participants) == 0 {
		participants = []schema.Username{creator}
	}
	return title, normalized, append([]schema.Username(nil), participants...), nil
}

func (s *service) CreateEvent(ctx context.Context, req schema.CreateEventRequest) (schema.CreateEventResponse, error) {
	creator := schema.NormalizeUsername(req.Creator)
	if err := schema.ValidateUsername(creator); err != nil {
		return schema.CreateEventResponse{}, err
	}
	title, wallTime, participants, err := validateEventFields(req.Title, req.Date, req.Time, creator, req.Participants)
	if err != nil {
		return schema.CreateEventResponse{}, err
	}

	s.mu.Lock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		s.mu.Unlock()
		return schema.CreateEventResponse{}, err
	}
	id := schema.EventID(s.newEventID())
	if _, exists := sess.events[id]; exists {
		s.mu.Unlock()
		return schema.CreateEventResponse{}, fmt.Errorf("%w: %s", schema.ErrEventExists, id)
	}
	ev := &scheduledEvent{
		ID:           id,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Date:         req.Date,
		Time:         wallTime,
		CreatedBy:    creator,
		Participants: participants,
	}
	sess.events[id] = ev
	snap := ev.snapshot()
	s.mu.Unlock()

	s.emitSchedule(schema.ScheduleEvent{
		SessionID: req.SessionID,
		Type:      schema.ScheduleCreated,
		Event:     snap,
	})
	if !s.cfg.DisableAuditLogging {
		log := logx.WithSession(ctx, req.SessionID)
		logx.WithUsername(log, creator).Info("service event created", "event", id, "title", title)
	}
	return schema.CreateEventResponse{Event: snap}, nil
}

func (s *service) UpdateEvent(ctx context.Context, req schema.UpdateEventRequest) (schema.UpdateEventResponse, error) {
	username := schema.NormalizeUsername(req.Username)
	if err := schema.ValidateUsername(username); err != nil {
		return schema.UpdateEventResponse{}, err
	}

	s.mu.Lock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		s.mu.Unlock()
		return schema.UpdateEventResponse{}, err
	}
	ev, ok := sess.events[req.EventID]
	if !ok {
		s.mu.Unlock()
		return schema.UpdateEventResponse{}, fmt.Errorf("%w: %s", schema.ErrEventNotFound, req.EventID)
	}
	if ev.CreatedBy != username {
		s.mu.Unlock()
		return schema.UpdateEventResponse{}, fmt.Errorf("%w: event %s belongs to %s", schema.ErrNotEventCreator, req.EventID, ev.CreatedBy)
	}
	title, wallTime, participants, err := validateEventFields(req.Title, req.Date, req.Time, ev.CreatedBy, req.Participants)
	if err != nil {
		s.mu.Unlock()
		return schema.UpdateEventResponse{}, err
	}
	ev.Title = title
	ev.Description = strings.TrimSpace(req.Description)
	ev.Date = req.Date
	ev.Time = wallTime
	ev.Participants = participants
	snap := ev.snapshot()
	s.mu.Unlock()

	s.emitSchedule(schema.ScheduleEvent{
		SessionID: req.SessionID,
		Type:      schema.ScheduleUpdated,
		Event:     snap,
	})
	if !s.cfg.DisableAuditLogging {
		log := logx.WithSession(ctx, req.SessionID)
		logx.WithUsername(log, username).Info("service event updated", "event", req.EventID)
	}
	return schema.UpdateEventResponse{Event: snap}, nil
}

func (s *service) RemoveEvent(ctx context.Context, req schema.RemoveEventRequest) (schema.RemoveEventResponse, error) {
	username := schema.NormalizeUsername(req.Username)
	if err := schema.ValidateUsername(username); err != nil {
		return schema.RemoveEventResponse{}, err
	}

	s.mu.Lock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		s.mu.Unlock()
		return schema.RemoveEventResponse{}, err
	}
	ev, ok := sess.events[req.EventID]
	if !ok {
		// Removing an already-removed event is a no-op.
		s.mu.Unlock()
		return schema.RemoveEventResponse{Removed: false}, nil
	}
	if ev.CreatedBy != username {
		s.mu.Unlock()
		return schema.RemoveEventResponse{}, fmt.Errorf("%w: event %s belongs to %s", schema.ErrNotEventCreator, req.EventID, ev.CreatedBy)
	}
	delete(sess.events, req.EventID)
	snap := ev.snapshot()
	s.mu.Unlock()

	s.emitSchedule(schema.ScheduleEvent{
		SessionID: req.SessionID,
		Type:      schema.ScheduleRemoved,
		Event:     snap,
	})
	if !s.cfg.DisableAuditLogging {
		log := logx.WithSession(ctx, req.SessionID)
		logx.WithUsername(log, username).Info("service event removed", "event", req.EventID)
	}
	return schema.RemoveEventResponse{Removed: true}, nil
}

func (s *service) ListEvents(ctx context.Context, req schema.ListEventsRequest) (schema.ListEventsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		return schema.ListEventsResponse{}, err
	}
	return schema.ListEventsResponse{Events: sess.eventSnapshots()}, nil
}
