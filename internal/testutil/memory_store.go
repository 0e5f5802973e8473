package testutil

import (
	"context"
	"sync"

	"github.com/sportxbet/tipstore/internal/domain/entity"
	errs "github.com/sportxbet/tipstore/internal/domain/error"
	"github.com/sportxbet/tipstore/internal/domain/port/persistence"
)

// MemoryStore is an in-memory implementation of the persistence ports for
// use case tests. Begin snapshots the whole state and Rollback restores it,
// so the atomicity the real unit of work gets from database transactions
// holds here too. Transactions are serialized by a store-wide lock.
type MemoryStore struct {
	txMu sync.Mutex // held from Begin to Commit/Rollback

	mu           sync.RWMutex
	users        map[string]entity.User
	recs         map[string]entity.Recommendation
	recOrder     []string
	purchases    []entity.Purchase
	transactions []entity.Transaction

	snapshot *storeState
}

type storeState struct {
	users        map[string]entity.User
	recs         map[string]entity.Recommendation
	recOrder     []string
	purchases    []entity.Purchase
	transactions []entity.Transaction
}

var _ persistence.UnitOfWork = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]entity.User),
		recs:  make(map[string]entity.Recommendation),
	}
}

func (s *MemoryStore) capture() *storeState {
	state := &storeState{
		users:        make(map[string]entity.User, len(s.users)),
		recs:         make(map[string]entity.Recommendation, len(s.recs)),
		recOrder:     append([]string(nil), s.recOrder...),
		purchases:    append([]entity.Purchase(nil), s.purchases...),
		transactions: append([]entity.Transaction(nil), s.transactions...),
	}
	for id, u := range s.users {
		state.users[id] = u
	}
	for id, r := range s.recs {
		state.recs[id] = r
	}
	return state
}

func (s *MemoryStore) restore(state *storeState) {
	s.users = state.users
	s.recs = state.recs
	s.recOrder = state.recOrder
	s.purchases = state.purchases
	s.transactions = state.transactions
}

// Begin starts a transaction by snapshotting the current state
func (s *MemoryStore) Begin(ctx context.Context) (context.Context, error) {
	s.txMu.Lock()
	s.mu.Lock()
	s.snapshot = s.capture()
	s.mu.Unlock()
	return ctx, nil
}

// Commit discards the snapshot, keeping all mutations
func (s *MemoryStore) Commit(ctx context.Context) error {
	s.mu.Lock()
	s.snapshot = nil
	s.mu.Unlock()
	s.txMu.Unlock()
	return nil
}

// Rollback restores the snapshot, dropping every mutation since Begin
func (s *MemoryStore) Rollback(ctx context.Context) error {
	s.mu.Lock()
	if s.snapshot != nil {
		s.restore(s.snapshot)
		s.snapshot = nil
	}
	s.mu.Unlock()
	s.txMu.Unlock()
	return nil
}

// Users returns the user repository view of the store
func (s *MemoryStore) Users(ctx context.Context) persistence.UserRepository {
	return (*memoryUserRepo)(s)
}

// Recommendations returns the catalog repository view of the store
func (s *MemoryStore) Recommendations(ctx context.Context) persistence.RecommendationRepository {
	return (*memoryRecRepo)(s)
}

// Purchases returns the purchase repository view of the store
func (s *MemoryStore) Purchases(ctx context.Context) persistence.PurchaseRepository {
	return (*memoryPurchaseRepo)(s)
}

// Transactions returns the ledger repository view of the store
func (s *MemoryStore) Transactions(ctx context.Context) persistence.TransactionRepository {
	return (*memoryTxRepo)(s)
}

// memoryUserRepo implements persistence.UserRepository

type memoryUserRepo MemoryStore

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memoryUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.TelegramID == telegramID && telegramID != 0 {
			user := u
			return &user, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return errs.ErrDuplicateUser
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errs.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

// memoryRecRepo implements persistence.RecommendationRepository

type memoryRecRepo MemoryStore

func (r *memoryRecRepo) GetByID(ctx context.Context, id string) (*entity.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, errs.ErrRecommendationNotFound
	}
	return &rec, nil
}

func (r *memoryRecRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Recommendation, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryRecRepo) List(ctx context.Context) ([]*entity.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recs := make([]*entity.Recommendation, 0, len(r.recOrder))
	for _, id := range r.recOrder {
		if rec, ok := r.recs[id]; ok {
			recCopy := rec
			recs = append(recs, &recCopy)
		}
	}
	return recs, nil
}

func (r *memoryRecRepo) Create(ctx context.Context, rec *entity.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs[rec.ID] = *rec
	r.recOrder = append(r.recOrder, rec.ID)
	return nil
}

func (r *memoryRecRepo) Update(ctx context.Context, rec *entity.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recs[rec.ID]; !ok {
		return errs.ErrRecommendationNotFound
	}
	r.recs[rec.ID] = *rec
	return nil
}

func (r *memoryRecRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recs[id]; !ok {
		return errs.ErrRecommendationNotFound
	}
	delete(r.recs, id)
	return nil
}

func (r *memoryRecRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.recs)), nil
}

// memoryPurchaseRepo implements persistence.PurchaseRepository

type memoryPurchaseRepo MemoryStore

func (r *memoryPurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchases = append(r.purchases, *purchase)
	return nil
}

func (r *memoryPurchaseRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owned := make([]*entity.Purchase, 0)
	for i := range r.purchases {
		if r.purchases[i].UserID == userID {
			p := r.purchases[i]
			owned = append(owned, &p)
		}
	}
	return owned, nil
}

func (r *memoryPurchaseRepo) ExistsForUser(ctx context.Context, userID, recommendationID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.purchases {
		if r.purchases[i].UserID == userID && r.purchases[i].RecommendationID == recommendationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPurchaseRepo) UpdateResultByRecommendation(ctx context.Context, recommendationID string, result entity.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.purchases {
		if r.purchases[i].RecommendationID == recommendationID {
			r.purchases[i].Result = result
		}
	}
	return nil
}

// memoryTxRepo implements persistence.TransactionRepository

type memoryTxRepo MemoryStore

func (r *memoryTxRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, *transaction)
	return nil
}

func (r *memoryTxRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owned := make([]*entity.Transaction, 0)
	for i := range r.transactions {
		if r.transactions[i].UserID == userID {
			t := r.transactions[i]
			owned = append(owned, &t)
		}
	}
	return owned, nil
}
