package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pkt.systems/codetribe/core"
	"pkt.systems/codetribe/internal/logx"
	"pkt.systems/codetribe/schema"
)

// Server serves the HTTP API.
type Server struct {
	cfg      Config
	service  core.Service
	logins   *loginStore
	hub      *Hub
	basePath string
	baseHref string
}

// NewServer constructs an HTTP server.
func NewServer(cfg Config, service core.Service, hub *Hub) *Server {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	return &Server{
		cfg:      cfg,
		service:  service,
		logins:   newLoginStore(ttl),
		hub:      hub,
		basePath: normalizeBasePath(cfg.BasePath),
		baseHref: buildBaseHref(cfg.BaseURL, cfg.BasePath),
	}
}

// SetBaseContext sets the parent context for login lifetimes.
func (s *Server) SetBaseContext(ctx context.Context) {
	if s == nil || ctx == nil {
		return
	}
	s.logins.setBaseContext(ctx)
}

// Handler returns an http.Handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/logout", s.handleLogout)
	mux.HandleFunc("/api/me", s.requireLogin(s.handleMe))
	mux.HandleFunc("/api/session", s.requireLogin(s.handleSession))
	mux.HandleFunc("/api/document", s.requireLogin(s.handleDocument))
	mux.HandleFunc("/api/language", s.requireLogin(s.handleLanguage))
	mux.HandleFunc("/api/languages", s.requireLogin(s.handleLanguages))
	mux.HandleFunc("/api/events", s.requireLogin(s.handleEvents))
	mux.HandleFunc("/api/events/update", s.requireLogin(s.handleEventUpdate))
	mux.HandleFunc("/api/events/remove", s.requireLogin(s.handleEventRemove))
	mux.HandleFunc("/api/run", s.requireLogin(s.handleRun))
	mux.HandleFunc("/api/execute", s.requireLogin(s.handleExecute))
	mux.HandleFunc("/api/console", s.requireLogin(s.handleConsole))
	mux.HandleFunc("/api/console/scroll", s.requireLogin(s.handleConsoleScroll))
	mux.HandleFunc("/api/history", s.requireLogin(s.handleHistory))
	mux.HandleFunc("/api/stream", s.requireLogin(s.handleStream))

	handler := withRequestLogging(mux, s.lookupLogin)
	if s.basePath == "" {
		return handler
	}
	prefix := s.basePath
	root := http.NewServeMux()
	root.Handle(prefix+"/", http.StripPrefix(prefix, handler))
	root.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != prefix {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, prefix+"/", http.StatusTemporaryRedirect)
	})
	return root
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.Ctx(r.Context()).With("remote", clientIP(r))
	var payload struct {
		SessionID string `json:"session_id"`
		Username  string `json:"username"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http login decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	log = log.With("session", payload.SessionID, "username", payload.Username)
	resp, err := s.service.JoinSession(r.Context(), schema.JoinSessionRequest{
		SessionID: schema.SessionID(payload.SessionID),
		Username:  schema.Username(payload.Username),
	})
	if err != nil {
		log.Warn("http login failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	token, entry := s.logins.create(resp.User.ID, resp.User.Username, resp.Session.ID)
	cookie := &http.Cookie{
		Name:     s.cfg.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  entry.expiresAt,
	}
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, resp)
	log.Info("http login ok", "user", resp.User.ID)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	token := s.loginToken(r)
	log := logx.Ctx(r.Context()).With("remote", clientIP(r))
	if token != "" {
		if entry, ok := s.logins.get(token); ok {
			log = log.With("user", entry.userID, "http_session", entry.id)
			if _, err := s.service.LeaveSession(r.Context(), schema.LeaveSessionRequest{
				SessionID: entry.sessionID,
				UserID:    entry.userID,
			}); err != nil {
				log.Warn("http logout leave failed", "err", err)
			}
		}
		s.logins.delete(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	log.Info("http logout")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, entry login) {
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":    entry.userID,
		"username":   entry.username,
		"session_id": entry.sessionID,
	})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	resp, err := s.service.GetSession(r.Context(), schema.GetSessionRequest{SessionID: entry.sessionID})
	if err != nil {
		log.Warn("http session get failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Debug("http session get ok", "users", len(resp.Session.Users))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request, entry login) {
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	switch r.Method {
	case http.MethodGet:
		resp, err := s.service.GetDocument(r.Context(), schema.GetDocumentRequest{SessionID: entry.sessionID})
		if err != nil {
			log.Warn("http document get failed", "err", err)
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Debug("http document get ok")
	case http.MethodPost:
		var payload struct {
			Code string `json:"code"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			log.Warn("http document decode failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := s.service.SetCode(r.Context(), schema.SetCodeRequest{
			SessionID: entry.sessionID,
			UserID:    entry.userID,
			Code:      payload.Code,
		})
		if err != nil {
			log.Warn("http document set failed", "err", err)
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Debug("http document set ok", "code_len", len(payload.Code))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	var payload struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http language decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.SetLanguage(r.Context(), schema.SetLanguageRequest{
		SessionID: entry.sessionID,
		UserID:    entry.userID,
		Language:  schema.LanguageID(payload.Language),
	})
	if err != nil {
		log.Warn("http language set failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http language set ok", "language", resp.Document.Language)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	resp, err := s.service.ListLanguages(r.Context(), schema.ListLanguagesRequest{})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type eventPayload struct {
	EventID      string   `json:"event_id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Participants []string `json:"participants"`
}

const eventDateLayout = "2006-01-02"

func (p eventPayload) date() (time.Time, error) {
	value := strings.TrimSpace(p.Date)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(eventDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must use %s", schema.ErrInvalidRequest, eventDateLayout)
	}
	return parsed, nil
}

func (p eventPayload) participants() []schema.Username {
	if len(p.Participants) == 0 {
		return nil
	}
	out := make([]schema.Username, 0, len(p.Participants))
	for _, name := range p.Participants {
		out = append(out, schema.Username(name))
	}
	return out
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, entry login) {
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	switch r.Method {
	case http.MethodGet:
		resp, err := s.service.ListEvents(r.Context(), schema.ListEventsRequest{SessionID: entry.sessionID})
		if err != nil {
			log.Warn("http events list failed", "err", err)
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Debug("http events list ok", "count", len(resp.Events))
	case http.MethodPost:
		var payload eventPayload
		if err := decodeJSON(r.Body, &payload); err != nil {
			log.Warn("http events decode failed", "err", err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		date, err := payload.date()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		resp, err := s.service.CreateEvent(r.Context(), schema.CreateEventRequest{
			SessionID:    entry.sessionID,
			Creator:      entry.username,
			Title:        payload.Title,
			Description:  payload.Description,
			Date:         date,
			Time:         payload.Time,
			Participants: payload.participants(),
		})
		if err != nil {
			log.Warn("http events create failed", "err", err)
			writeError(w, statusForError(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		log.Info("http events create ok", "event", resp.Event.ID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEventUpdate(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	var payload eventPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http event update decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	date, err := payload.date()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.UpdateEvent(r.Context(), schema.UpdateEventRequest{
		SessionID:    entry.sessionID,
		Username:     entry.username,
		EventID:      schema.EventID(payload.EventID),
		Title:        payload.Title,
		Description:  payload.Description,
		Date:         date,
		Time:         payload.Time,
		Participants: payload.participants(),
	})
	if err != nil {
		log.Warn("http event update failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http event update ok", "event", resp.Event.ID)
}

func (s *Server) handleEventRemove(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	var payload struct {
		EventID string `json:"event_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http event remove decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.RemoveEvent(r.Context(), schema.RemoveEventRequest{
		SessionID: entry.sessionID,
		Username:  entry.username,
		EventID:   schema.EventID(payload.EventID),
	})
	if err != nil {
		log.Warn("http event remove failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Info("http event remove ok", "event", payload.EventID, "removed", resp.Removed)
}

type executionPayload struct {
	Result          schema.ExecutionResult  `json:"result"`
	ExecutionTimeMS int64                   `json:"execution_time_ms"`
	Document        schema.DocumentSnapshot `json:"document,omitzero"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	resp, err := s.service.Run(r.Context(), schema.RunRequest{
		SessionID: entry.sessionID,
		UserID:    entry.userID,
	})
	if err != nil {
		log.Warn("http run failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, executionPayload{
		Result:          resp.Result,
		ExecutionTimeMS: resp.Result.ExecutionTimeMillis(),
		Document:        resp.Document,
	})
	log.Info("http run ok", "success", resp.Result.Success, "duration_ms", resp.Result.ExecutionTimeMillis())
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	var payload struct {
		Code     string `json:"code"`
		Language string `json:"language"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http execute decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.service.Execute(r.Context(), schema.ExecuteRequest{
		SessionID: entry.sessionID,
		UserID:    entry.userID,
		Code:      payload.Code,
		Language:  schema.LanguageID(payload.Language),
	})
	if err != nil {
		log.Warn("http execute failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, executionPayload{
		Result:          resp.Result,
		ExecutionTimeMS: resp.Result.ExecutionTimeMillis(),
	})
	log.Info("http execute ok", "success", resp.Result.Success, "duration_ms", resp.Result.ExecutionTimeMillis())
}

func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	limit := parseInt(r.URL.Query().Get("limit"), s.cfg.InitialConsoleLines)
	resp, err := s.service.GetConsole(r.Context(), schema.GetConsoleRequest{
		SessionID: entry.sessionID,
		Limit:     limit,
	})
	if err != nil {
		log.Warn("http console failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Debug("http console ok", "lines", resp.Console.TotalLines)
}

func (s *Server) handleConsoleScroll(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	var payload struct {
		Delta int `json:"delta"`
		Limit int `json:"limit"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		log.Warn("http console scroll decode failed", "err", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit := payload.Limit
	if limit <= 0 {
		limit = s.cfg.InitialConsoleLines
	}
	resp, err := s.service.ScrollConsole(r.Context(), schema.ScrollConsoleRequest{
		SessionID: entry.sessionID,
		Delta:     payload.Delta,
		Limit:     limit,
	})
	if err != nil {
		log.Warn("http console scroll failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Debug("http console scroll ok", "offset", resp.Console.ScrollOffset)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, entry login) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)
	resp, err := s.service.GetHistory(r.Context(), schema.GetHistoryRequest{SessionID: entry.sessionID})
	if err != nil {
		log.Warn("http history failed", "err", err)
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
	log.Debug("http history ok", "entries", len(resp.Entries))
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request, entry login) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("stream unsupported"))
		return
	}
	log := logx.WithSessionUser(r.Context(), entry.sessionID, entry.userID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	lastID := parseUint(r.Header.Get("Last-Event-ID"))

	snapshot := s.buildSnapshot(r.Context(), entry.sessionID)
	_ = writeSSEvent(w, StreamEvent{
		Type:      "snapshot",
		Snapshot:  &snapshot,
		Timestamp: time.Now(),
	})
	flusher.Flush()

	replayCount := 0
	if lastID > 0 {
		replay := s.hub.Replay(entry.sessionID, lastID)
		replayCount = len(replay)
		for _, event := range replay {
			_ = writeSSEvent(w, event)
		}
		flusher.Flush()
	}

	ch, unsubscribe, _, _ := s.hub.Subscribe(entry.sessionID)
	defer unsubscribe()

	notify := r.Context().Done()
	log.Info("http stream opened", "last_id", lastID, "replay", replayCount)
	for {
		select {
		case <-notify:
			log.Info("http stream closed")
			return
		case event := <-ch:
			_ = writeSSEvent(w, event)
			flusher.Flush()
		}
	}
}

func (s *Server) buildSnapshot(ctx context.Context, sessionID schema.SessionID) SnapshotPayload {
	payload := SnapshotPayload{}
	if resp, err := s.service.GetSession(ctx, schema.GetSessionRequest{SessionID: sessionID}); err == nil {
		payload.Session = resp.Session
	}
	if resp, err := s.service.GetConsole(ctx, schema.GetConsoleRequest{
		SessionID: sessionID,
		Limit:     s.cfg.InitialConsoleLines,
	}); err == nil {
		payload.Console = resp.Console
	}
	if resp, err := s.service.GetHistory(ctx, schema.GetHistoryRequest{SessionID: sessionID}); err == nil {
		payload.History = resp.Entries
	}
	if resp, err := s.service.ListLanguages(ctx, schema.ListLanguagesRequest{}); err == nil {
		payload.Languages = resp.Languages
	}
	return payload
}

func (s *Server) requireLogin(next func(http.ResponseWriter, *http.Request, login)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logx.Ctx(r.Context()).With("remote", clientIP(r))
		token := s.loginToken(r)
		if token == "" {
			log.Warn("http session missing")
			writeError(w, http.StatusUnauthorized, errors.New("missing session"))
			return
		}
		entry, ok := s.logins.get(token)
		if !ok {
			log.Warn("http session invalid")
			writeError(w, http.StatusUnauthorized, errors.New("invalid session"))
			return
		}
		log = log.With("user", entry.userID, "http_session", entry.id)
		ctx := logx.ContextWithSessionUserLogger(r.Context(), log, entry.sessionID, entry.userID)
		next(w, r.WithContext(ctx), entry)
	}
}

func (s *Server) loginToken(r *http.Request) string {
	cookie, err := r.Cookie(s.cfg.SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Server) lookupLogin(r *http.Request) (schema.UserID, string) {
	if s == nil || r == nil {
		return "", ""
	}
	token := s.loginToken(r)
	if token == "" {
		return "", ""
	}
	entry, ok := s.logins.get(token)
	if !ok {
		return "", ""
	}
	return entry.userID, entry.id
}

func statusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, schema.ErrSessionNotFound),
		errors.Is(err, schema.ErrUserNotFound),
		errors.Is(err, schema.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrUsernameTaken),
		errors.Is(err, schema.ErrEventExists),
		errors.Is(err, schema.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, schema.ErrNotEventCreator):
		return http.StatusForbidden
	case errors.Is(err, schema.ErrDispatcherUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, schema.ErrInvalidRequest),
		errors.Is(err, schema.ErrInvalidUser),
		errors.Is(err, schema.ErrInvalidSession),
		errors.Is(err, schema.ErrInvalidLanguage),
		errors.Is(err, schema.ErrEmptyTitle),
		errors.Is(err, schema.ErrMissingDate),
		errors.Is(err, schema.ErrInvalidTime),
		errors.Is(err, schema.ErrCodeTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(body io.Reader, target any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeSSEvent(w http.ResponseWriter, event StreamEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if event.Seq > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", event.Seq)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", strings.TrimSpace(string(data)))
	return nil
}

func parseUint(value string) uint64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
