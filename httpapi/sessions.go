package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"pkt.systems/codetribe/internal/logx"
	"pkt.systems/codetribe/schema"
)

// login is one authenticated browser session. Logins are held in
// memory only; restarting the server logs everyone out.
type login struct {
	id        string
	userID    schema.UserID
	username  schema.Username
	sessionID schema.SessionID
	expiresAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

type loginStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	baseCtx context.Context
	items   map[string]login
}

func newLoginStore(ttl time.Duration) *loginStore {
	return &loginStore{
		ttl:     ttl,
		baseCtx: context.TODO(),
		items:   make(map[string]login),
	}
}

func (s *loginStore) create(userID schema.UserID, username schema.Username, sessionID schema.SessionID) (string, login) {
	token := randomToken(32)
	entry := s.newLogin(userID, username, sessionID, time.Now().Add(s.ttl))
	log := logx.WithSessionUser(context.Background(), sessionID, userID).With("http_session", entry.id)
	s.mu.Lock()
	s.items[token] = entry
	s.mu.Unlock()
	log.Info("login created", "expires", entry.expiresAt.Format(time.RFC3339))
	return token, entry
}

func (s *loginStore) get(token string) (login, bool) {
	s.mu.Lock()
	entry, ok := s.items[token]
	if !ok {
		s.mu.Unlock()
		return login{}, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.items, token)
		if entry.cancel != nil {
			entry.cancel()
		}
		s.mu.Unlock()
		logx.WithSessionUser(context.Background(), entry.sessionID, entry.userID).With("http_session", entry.id).Info("login expired")
		return login{}, false
	}
	s.mu.Unlock()
	return entry, true
}

func (s *loginStore) delete(token string) {
	s.mu.Lock()
	entry, ok := s.items[token]
	if ok {
		delete(s.items, token)
	}
	s.mu.Unlock()
	if ok && entry.cancel != nil {
		entry.cancel()
	}
	if ok {
		logx.WithSessionUser(context.Background(), entry.sessionID, entry.userID).With("http_session", entry.id).Info("login deleted")
	}
}

func (s *loginStore) setBaseContext(ctx context.Context) {
	if ctx == nil {
		return
	}
	s.mu.Lock()
	s.baseCtx = ctx
	for token, entry := range s.items {
		if entry.cancel != nil {
			entry.cancel()
		}
		nextCtx, cancel := context.WithCancel(ctx)
		entry.ctx = nextCtx
		entry.cancel = cancel
		s.items[token] = entry
	}
	s.mu.Unlock()
	logx.Ctx(context.Background()).Debug("login base context set")
}

func (s *loginStore) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseCtx != nil {
		return s.baseCtx
	}
	return context.TODO()
}

func (s *loginStore) newLogin(userID schema.UserID, username schema.Username, sessionID schema.SessionID, expiresAt time.Time) login {
	ctx, cancel := context.WithCancel(s.baseContext())
	return login{
		id:        randomToken(12),
		userID:    userID,
		username:  username,
		sessionID: sessionID,
		expiresAt: expiresAt,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func randomToken(size int) string {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
