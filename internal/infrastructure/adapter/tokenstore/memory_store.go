package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// MemoryStore keeps handshake tokens in process memory. Used in tests and
// redis-less deployments; tokens do not survive a restart.
type MemoryStore struct {
	mu           sync.Mutex
	tokens       map[string]*entity.AuthToken
	timeProvider coreport.TimeProvider
}

// NewMemoryStore creates an in-memory token store
func NewMemoryStore(timeProvider coreport.TimeProvider) *MemoryStore {
	return &MemoryStore{
		tokens:       make(map[string]*entity.AuthToken),
		timeProvider: timeProvider,
	}
}

// Save stores a token. Expiry is enforced on Redeem rather than by a timer.
func (s *MemoryStore) Save(ctx context.Context, token *entity.AuthToken, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.tokens[token.Token] = &copied
	return nil
}

// Redeem atomically looks up and consumes a token
func (s *MemoryStore) Redeem(ctx context.Context, token string) (*entity.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authToken, ok := s.tokens[token]
	if !ok {
		return nil, errs.ErrTokenExpiredOrUsed
	}
	delete(s.tokens, token)

	if authToken.Expired(s.timeProvider.Now()) {
		return nil, errs.ErrTokenExpiredOrUsed
	}
	return authToken, nil
}
