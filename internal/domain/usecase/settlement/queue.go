package settlement

import (
	"context"
	"sync"

	errs "github.com/sportxbet/tipstore/internal/domain/error"
	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// SettleFunc is the function signature for executing a settlement
type SettleFunc func(ctx context.Context, userID, recommendationID string) (*Receipt, error)

// settleRequest represents a queued settlement request
type settleRequest struct {
	ctx              context.Context
	userID           string
	recommendationID string
	resultChan       chan *settleResult
}

// settleResult represents the result of a processed settlement
type settleResult struct {
	receipt *Receipt
	err     error
}

// Queue serializes settlements per user. Each user gets a dedicated worker
// draining a channel, so a session's mutating operations run to completion
// in order and validation reads never observe state older than the previous
// committed write from the same session.
type Queue struct {
	logger coreport.Logger
	settle SettleFunc

	userQueues     sync.Map // map[string]chan *settleRequest
	queueWaitGroup sync.WaitGroup
}

// NewQueue creates a settlement queue
func NewQueue(logger coreport.Logger, settle SettleFunc) *Queue {
	if settle == nil {
		panic("settle function cannot be nil")
	}
	return &Queue{
		logger: logger,
		settle: settle,
	}
}

// Enqueue adds a settlement to the user's queue and waits for its result
func (q *Queue) Enqueue(ctx context.Context, userID, recommendationID string) (*Receipt, error) {
	resultChan := make(chan *settleResult, 1)

	var queue chan *settleRequest
	queueIface, loaded := q.userQueues.LoadOrStore(userID, make(chan *settleRequest, 100))
	if queueCh, ok := queueIface.(chan *settleRequest); ok {
		queue = queueCh
	} else {
		q.logger.Error("Failed to type assert queue channel", nil)
		return nil, errs.ErrInternalServer
	}

	if !loaded {
		q.logger.Debug("Starting settlement worker for user", map[string]any{
			"user_id": userID,
		})
		q.queueWaitGroup.Add(1)
		go q.drain(userID, queue)
	}

	req := &settleRequest{
		ctx:              ctx,
		userID:           userID,
		recommendationID: recommendationID,
		resultChan:       resultChan,
	}

	select {
	case queue <- req:
	case <-ctx.Done():
		q.logger.Warn("Context canceled while enqueueing settlement", map[string]any{
			"user_id":           userID,
			"recommendation_id": recommendationID,
		})
		return nil, ctx.Err()
	}

	select {
	case result := <-resultChan:
		return result.receipt, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// drain processes a user's settlements sequentially
func (q *Queue) drain(userID string, queue chan *settleRequest) {
	defer q.queueWaitGroup.Done()

	for req := range queue {
		receipt, err := q.settle(req.ctx, req.userID, req.recommendationID)
		req.resultChan <- &settleResult{receipt: receipt, err: err}
		close(req.resultChan)
	}

	q.logger.Debug("Settlement worker stopped", map[string]any{
		"user_id": userID,
	})
}

// Shutdown stops all worker goroutines cleanly
func (q *Queue) Shutdown() {
	q.userQueues.Range(func(_, queueIface any) bool {
		if queue, ok := queueIface.(chan *settleRequest); ok {
			close(queue)
		}
		return true
	})
	q.queueWaitGroup.Wait()
}
