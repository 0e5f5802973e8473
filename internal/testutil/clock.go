package testutil

import (
	"context"
	"sync"
	"time"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// FixedTimeProvider is a TimeProvider pinned to a settable instant, so tests
// control expiry windows and timestamps deterministically
type FixedTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixedTimeProvider creates a provider pinned to the given instant
func NewFixedTimeProvider(now time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{now: now}
}

// Now returns the pinned instant
func (p *FixedTimeProvider) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.now
}

// Advance moves the pinned instant forward
func (p *FixedTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = p.now.Add(d)
}

// Set pins the instant to a new value
func (p *FixedTimeProvider) Set(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

// Since measures from the pinned instant
func (p *FixedTimeProvider) Since(t time.Time) coreport.Duration {
	return coreport.Duration(p.Now().Sub(t))
}

// Until measures to the pinned instant
func (p *FixedTimeProvider) Until(t time.Time) coreport.Duration {
	return coreport.Duration(t.Sub(p.Now()))
}

// Sleep is a no-op; tests never wait on wall-clock time
func (p *FixedTimeProvider) Sleep(d coreport.Duration) {}

// WithTimeout delegates to the standard library
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

// ParseDuration delegates to the standard library
func (p *FixedTimeProvider) ParseDuration(s string) (coreport.Duration, error) {
	d, err := time.ParseDuration(s)
	return coreport.Duration(d), err
}
