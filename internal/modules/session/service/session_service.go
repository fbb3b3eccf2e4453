package service

import (
	"context"
	"sync"

	sessionout "eductl/internal/modules/session/port/out"
)

// SessionService is the in-memory source of truth for the session token,
// backed by a durable store. Persistence is best-effort: a store failure
// never blocks or reverts the in-memory update.
type SessionService struct {
	store sessionout.TokenStore

	mu    sync.RWMutex
	token string
}

// NewSessionService hydrates the in-memory token from the durable store so
// the first read after a restart already sees the persisted session.
func NewSessionService(store sessionout.TokenStore) *SessionService {
	s := &SessionService{store: store}
	if store != nil {
		if token, err := store.Load(context.Background()); err == nil {
			s.token = token
		}
	}
	return s
}

func (s *SessionService) SetToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if s.store == nil {
		return
	}
	if token == "" {
		_ = s.store.Clear(ctx)
		return
	}
	_ = s.store.Save(ctx, token)
}

func (s *SessionService) ClearToken(ctx context.Context) {
	s.SetToken(ctx, "")
}

// Token prefers the in-memory value and falls back to the durable store,
// mirroring how requests must still authenticate when memory was never
// primed in this process.
func (s *SessionService) Token(ctx context.Context) string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token
	}
	if s.store == nil {
		return ""
	}
	stored, err := s.store.Load(ctx)
	if err != nil {
		return ""
	}
	return stored
}
