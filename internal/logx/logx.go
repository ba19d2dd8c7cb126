package logx

import (
	"context"

	"pkt.systems/codetribe/schema"
	"pkt.systems/pslog"
)

type contextKey int

const (
	sessionKey contextKey = iota
	userKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with the session id if present.
func WithSession(ctx context.Context, sessionID schema.SessionID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if sessionID != "" {
		if current, ok := ctx.Value(sessionKey).(schema.SessionID); ok && current == sessionID {
			return log
		}
		log = log.With("session", sessionID)
	}
	return log
}

// WithSessionUser annotates the logger with session and user identifiers.
func WithSessionUser(ctx context.Context, sessionID schema.SessionID, userID schema.UserID) pslog.Logger {
	log := WithSession(ctx, sessionID)
	if userID != "" {
		if current, ok := ctx.Value(userKey).(schema.UserID); ok && current == userID {
			return log
		}
		log = log.With("user", userID)
	}
	return log
}

// WithUsername annotates the logger with a username when available.
func WithUsername(log pslog.Logger, name schema.Username) pslog.Logger {
	if name != "" {
		log = log.With("username", name)
	}
	return log
}

// WithLanguage annotates the logger with a language tag when available.
func WithLanguage(log pslog.Logger, lang schema.LanguageID) pslog.Logger {
	if lang != "" {
		log = log.With("language", lang)
	}
	return log
}

// ContextWithSession stores the session marker on the context for log de-duplication.
func ContextWithSession(ctx context.Context, sessionID schema.SessionID) context.Context {
	if ctx == nil || sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, sessionID)
}

// ContextWithUser stores the user marker on the context for log de-duplication.
func ContextWithUser(ctx context.Context, userID schema.UserID) context.Context {
	if ctx == nil || userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey, userID)
}

// ContextWithSessionUser stores session/user markers on the context for log de-duplication.
func ContextWithSessionUser(ctx context.Context, sessionID schema.SessionID, userID schema.UserID) context.Context {
	return ContextWithUser(ContextWithSession(ctx, sessionID), userID)
}

// ContextWithSessionUserLogger attaches the logger and session/user markers to the context.
func ContextWithSessionUserLogger(ctx context.Context, log pslog.Logger, sessionID schema.SessionID, userID schema.UserID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithSessionUser(ctx, sessionID, userID)
}
