package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"pkt.systems/codetribe/internal/logx"
	"pkt.systems/codetribe/schema"
	"pkt.systems/pslog"
)

// service implements the core service behavior.
type service struct {
	cfg        schema.ServiceConfig
	dispatcher *Dispatcher
	sink       EventSink
	logger     pslog.Logger
	newEventID func() string
	edits      EditApplier
	now        func() time.Time

	mu       sync.Mutex
	sessions map[schema.SessionID]*session
}

// NewService constructs the core service implementation.
func NewService(cfg schema.ServiceConfig, deps ServiceDeps) (Service, error) {
	cfg = schema.NormalizeServiceConfig(cfg)
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = NewDispatcher(DispatcherConfig{}, DispatcherDeps{Logger: logger})
	}
	newEventID := deps.NewEventID
	if newEventID == nil {
		newEventID = func() string { return uuid.NewString() }
	}
	edits := deps.Edits
	if edits == nil {
		edits = lastWriteWins{}
	}
	return &service{
		cfg:        cfg,
		dispatcher: deps.Dispatcher,
		sink:       deps.EventSink,
		logger:     logger,
		newEventID: newEventID,
		edits:      edits,
		now:        time.Now,
		sessions:   make(map[schema.SessionID]*session),
	}, nil
}

// getSession returns the named session. Callers hold s.mu.
func (s *service) getSession(id schema.SessionID) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", schema.ErrSessionNotFound, id)
	}
	return sess, nil
}

// getMember returns the session and the member user. Callers hold s.mu.
func (s *service) getMember(sessionID schema.SessionID, userID schema.UserID) (*session, *user, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	u, ok := sess.users[userID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", schema.ErrUserNotFound, userID)
	}
	return sess, u, nil
}

func (s *service) JoinSession(ctx context.Context, req schema.JoinSessionRequest) (schema.JoinSessionResponse, error) {
	sessionID := schema.NormalizeSessionID(req.SessionID)
	if err := schema.ValidateSessionID(sessionID); err != nil {
		return schema.JoinSessionResponse{}, err
	}
	name := schema.NormalizeUsername(req.Username)
	if err := schema.ValidateUsername(name); err != nil {
		return schema.JoinSessionResponse{}, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	created := false
	if !ok {
		sess = newSession(sessionID, s.cfg)
		s.sessions[sessionID] = sess
		created = true
	}
	if sess.userByName(name) != nil {
		s.mu.Unlock()
		return schema.JoinSessionResponse{}, fmt.Errorf("%w: %s", schema.ErrUsernameTaken, name)
	}
	u := &user{
		ID:    schema.UserID(newID()),
		Name:  name,
		Color: sess.nextColor(s.cfg.UserColors),
	}
	sess.addUser(u)
	userSnap := u.snapshot()
	users := sess.userSnapshots()
	snapshot := sess.Snapshot()
	s.mu.Unlock()

	s.emitPresence(schema.PresenceEvent{
		SessionID: sessionID,
		Type:      schema.PresenceJoined,
		User:      userSnap,
		Users:     users,
	})
	if !s.cfg.DisableAuditLogging {
		log := logx.WithSessionUser(ctx, sessionID, u.ID)
		logx.WithUsername(log, name).Info("service session joined", "session_created", created)
	}
	return schema.JoinSessionResponse{User: userSnap, Session: snapshot}, nil
}

func (s *service) LeaveSession(ctx context.Context, req schema.LeaveSessionRequest) (schema.LeaveSessionResponse, error) {
	s.mu.Lock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		s.mu.Unlock()
		return schema.LeaveSessionResponse{}, err
	}
	u := sess.removeUser(req.UserID)
	if u == nil {
		s.mu.Unlock()
		return schema.LeaveSessionResponse{}, fmt.Errorf("%w: %s", schema.ErrUserNotFound, req.UserID)
	}
	userSnap := u.snapshot()
	users := sess.userSnapshots()
	s.mu.Unlock()

	s.emitPresence(schema.PresenceEvent{
		SessionID: req.SessionID,
		Type:      schema.PresenceLeft,
		User:      userSnap,
		Users:     users,
	})
	if !s.cfg.DisableAuditLogging {
		log := logx.WithSessionUser(ctx, req.SessionID, req.UserID)
		logx.WithUsername(log, u.Name).Info("service session left", "remaining_users", len(users))
	}
	return schema.LeaveSessionResponse{User: userSnap}, nil
}

func (s *service) GetSession(ctx context.Context, req schema.GetSessionRequest) (schema.GetSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		return schema.GetSessionResponse{}, err
	}
	return schema.GetSessionResponse{Session: sess.Snapshot()}, nil
}

func (s *service) SetCode(ctx context.Context, req schema.SetCodeRequest) (schema.SetCodeResponse, error) {
	if s.cfg.MaxCodeBytes > 0 && len(req.Code) > s.cfg.MaxCodeBytes {
		return schema.SetCodeResponse{}, fmt.Errorf("%w: %d bytes", schema.ErrCodeTooLarge, len(req.Code))
	}
	s.mu.Lock()
	sess, _, err := s.getMember(req.SessionID, req.UserID)
	if err != nil {
		s.mu.Unlock()
		return schema.SetCodeResponse{}, err
	}
	code := req.Code
	doc := s.edits.ApplyEdit(sess.document.snapshot(), Edit{
		Code:      &code,
		UpdatedBy: req.UserID,
		At:        s.now(),
	})
	sess.document = documentFromSnapshot(doc)
	s.mu.Unlock()

	s.emitDocument(schema.DocumentEvent{
		SessionID: req.SessionID,
		Type:      schema.DocumentCodeUpdated,
		UserID:    req.UserID,
		Document:  doc,
	})
	if !s.cfg.DisableAuditLogging {
		logx.WithSessionUser(ctx, req.SessionID, req.UserID).Debug("service code updated", "code_len", len(req.Code))
	}
	return schema.SetCodeResponse{Document: doc}, nil
}

func (s *service) SetLanguage(ctx context.Context, req schema.SetLanguageRequest) (schema.SetLanguageResponse, error) {
	lang := schema.NormalizeLanguageID(req.Language)
	if err := schema.ValidateLanguageID(lang); err != nil {
		return schema.SetLanguageResponse{}, err
	}
	s.mu.Lock()
	sess, _, err := s.getMember(req.SessionID, req.UserID)
	if err != nil {
		s.mu.Unlock()
		return schema.SetLanguageResponse{}, err
	}
	doc := s.edits.ApplyEdit(sess.document.snapshot(), Edit{
		Language:  &lang,
		UpdatedBy: req.UserID,
		At:        s.now(),
	})
	sess.document = documentFromSnapshot(doc)
	s.mu.Unlock()

	s.emitDocument(schema.DocumentEvent{
		SessionID: req.SessionID,
		Type:      schema.DocumentLanguageChanged,
		UserID:    req.UserID,
		Document:  doc,
	})
	if !s.cfg.DisableAuditLogging {
		log := logx.WithSessionUser(ctx, req.SessionID, req.UserID)
		logx.WithLanguage(log, lang).Info("service language changed")
	}
	return schema.SetLanguageResponse{Document: doc}, nil
}

func (s *service) GetDocument(ctx context.Context, req schema.GetDocumentRequest) (schema.GetDocumentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		return schema.GetDocumentResponse{}, err
	}
	return schema.GetDocumentResponse{Document: sess.document.snapshot()}, nil
}

func (s *service) emitPresence(event schema.PresenceEvent) {
	if s.sink != nil {
		s.sink.OnPresence(event)
	}
}

func (s *service) emitDocument(event schema.DocumentEvent) {
	if s.sink != nil {
		s.sink.OnDocument(event)
	}
}

func (s *service) emitSchedule(event schema.ScheduleEvent) {
	if s.sink != nil {
		s.sink.OnSchedule(event)
	}
}

func (s *service) emitConsole(event schema.ConsoleEvent) {
	if s.sink != nil {
		s.sink.OnConsole(event)
	}
}

func (s *service) emitRun(event schema.RunEvent) {
	if s.sink != nil {
		s.sink.OnRun(event)
	}
}
