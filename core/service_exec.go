package core

import (
	"context"
	"fmt"
	"strings"

	"pkt.systems/codetribe/internal/logx"
	"pkt.systems/codetribe/schema"
)

func (s *service) Run(ctx context.Context, req schema.RunRequest) (schema.RunResponse, error) {
	s.mu.Lock()
	sess, _, err := s.getMember(req.SessionID, req.UserID)
	if err != nil {
		s.mu.Unlock()
		return schema.RunResponse{}, err
	}
	code := sess.document.Code
	lang := sess.document.Language
	doc := sess.document.snapshot()
	s.mu.Unlock()

	result, err := s.dispatch(ctx, req.SessionID, req.UserID, code, lang)
	if err != nil {
		return schema.RunResponse{}, err
	}
	return schema.RunResponse{Result: result, Document: doc}, nil
}

func (s *service) Execute(ctx context.Context, req schema.ExecuteRequest) (schema.ExecuteResponse, error) {
	s.mu.Lock()
	_, _, err := s.getMember(req.SessionID, req.UserID)
	s.mu.Unlock()
	if err != nil {
		return schema.ExecuteResponse{}, err
	}
	result, err := s.dispatch(ctx, req.SessionID, req.UserID, req.Code, req.Language)
	if err != nil {
		return schema.ExecuteResponse{}, err
	}
	return schema.ExecuteResponse{Result: result}, nil
}

// dispatch runs one submission through the dispatcher. The session
// lock is released during the latency suspension so document and
// membership operations keep flowing while a run is in flight.
func (s *service) dispatch(ctx context.Context, sessionID schema.SessionID, userID schema.UserID, code string, lang schema.LanguageID) (schema.ExecutionResult, error) {
	if s.dispatcher == nil {
		return schema.ExecutionResult{}, schema.ErrDispatcherUnavailable
	}
	lang = schema.NormalizeLanguageID(lang)
	if err := schema.ValidateLanguageID(lang); err != nil {
		return schema.ExecutionResult{}, err
	}

	s.mu.Lock()
	sess, err := s.getSession(sessionID)
	if err != nil {
		s.mu.Unlock()
		return schema.ExecutionResult{}, err
	}
	if sess.running {
		s.mu.Unlock()
		return schema.ExecutionResult{}, fmt.Errorf("%w: %s", schema.ErrSessionBusy, sessionID)
	}
	sess.running = true
	sess.history.Append(code)
	header := fmt.Sprintf("$ run %s", lang)
	sess.console.Append(header)
	s.mu.Unlock()

	s.emitConsole(schema.ConsoleEvent{SessionID: sessionID, Lines: []string{header}})
	s.emitRun(schema.RunEvent{SessionID: sessionID, UserID: userID, Status: schema.SessionStatusRunning})

	log := logx.WithSessionUser(ctx, sessionID, userID)
	if !s.cfg.DisableAuditLogging {
		logx.WithLanguage(log, lang).Info("service run start", "code_len", len(code))
	}

	result, execErr := s.dispatcher.Execute(ctx, schema.ExecutionRequest{Code: code, Language: lang})

	lines := consoleLines(result, execErr)
	s.mu.Lock()
	sess.running = false
	sess.console.Append(lines...)
	s.mu.Unlock()

	s.emitConsole(schema.ConsoleEvent{SessionID: sessionID, Lines: lines})
	if execErr != nil {
		s.emitRun(schema.RunEvent{SessionID: sessionID, UserID: userID, Status: schema.SessionStatusIdle})
		return schema.ExecutionResult{}, execErr
	}
	s.emitRun(schema.RunEvent{SessionID: sessionID, UserID: userID, Status: schema.SessionStatusIdle, Result: &result})
	if !s.cfg.DisableAuditLogging {
		logx.WithLanguage(log, lang).Info("service run complete",
			"success", result.Success,
			"canceled", result.Canceled,
			"duration_ms", result.ExecutionTimeMillis())
	}
	return result, nil
}

// consoleLines renders an execution outcome as console scrollback.
func consoleLines(result schema.ExecutionResult, execErr error) []string {
	if execErr != nil {
		return []string{fmt.Sprintf("Execution failed: %v", execErr)}
	}
	lines := strings.Split(result.Output, "\n")
	switch {
	case result.Canceled:
		lines = append(lines, fmt.Sprintf("[canceled after %dms]", result.ExecutionTimeMillis()))
	case result.Success:
		lines = append(lines, fmt.Sprintf("[completed in %dms]", result.ExecutionTimeMillis()))
	default:
		lines = append(lines, fmt.Sprintf("[failed in %dms]", result.ExecutionTimeMillis()))
	}
	return lines
}

func (s *service) GetConsole(ctx context.Context, req schema.GetConsoleRequest) (schema.GetConsoleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		return schema.GetConsoleResponse{}, err
	}
	return schema.GetConsoleResponse{Console: consoleSnapshot(req.SessionID, sess.console.Snapshot(req.Limit))}, nil
}

func (s *service) ScrollConsole(ctx context.Context, req schema.ScrollConsoleRequest) (schema.ScrollConsoleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		return schema.ScrollConsoleResponse{}, err
	}
	sess.console.Scroll(req.Delta, req.Limit)
	return schema.ScrollConsoleResponse{Console: consoleSnapshot(req.SessionID, sess.console.Snapshot(req.Limit))}, nil
}

func (s *service) GetHistory(ctx context.Context, req schema.GetHistoryRequest) (schema.GetHistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getSession(req.SessionID)
	if err != nil {
		return schema.GetHistoryResponse{}, err
	}
	return schema.GetHistoryResponse{Entries: sess.history.Entries()}, nil
}

func (s *service) ListLanguages(ctx context.Context, req schema.ListLanguagesRequest) (schema.ListLanguagesResponse, error) {
	if s.dispatcher == nil {
		return schema.ListLanguagesResponse{}, schema.ErrDispatcherUnavailable
	}
	return schema.ListLanguagesResponse{Languages: s.dispatcher.Registry().Languages()}, nil
}

func consoleSnapshot(id schema.SessionID, view consoleView) schema.ConsoleSnapshot {
	return schema.ConsoleSnapshot{
		SessionID:    id,
		Lines:        view.Lines,
		TotalLines:   view.TotalLines,
		ScrollOffset: view.ScrollOffset,
		AtBottom:     view.AtBottom,
	}
}
