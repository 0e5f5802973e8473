package entity

import (
	"context"
	"time"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
)

// stubClock pins Now to a fixed instant for entity tests
type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time                      { return c.now }
func (c *stubClock) Since(t time.Time) coreport.Duration { return coreport.Duration(c.now.Sub(t)) }
func (c *stubClock) Until(t time.Time) coreport.Duration { return coreport.Duration(t.Sub(c.now)) }
func (c *stubClock) Sleep(d coreport.Duration)           {}
func (c *stubClock) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}
func (c *stubClock) ParseDuration(s string) (coreport.Duration, error) {
	d, err := time.ParseDuration(s)
	return coreport.Duration(d), err
}
