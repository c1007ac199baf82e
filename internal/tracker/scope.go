package tracker

import (
	"context"
	"sync"

	"github.com/julianstephens/habitkit/internal/logger"
)

// Scope owns the fire-and-forget write tasks issued by one screen or
// controller. Cancelling the scope drops tasks that have not started yet;
// this is an accepted-loss contract, not an accident: a write issued just
// before navigating away may simply never happen. Tasks already executing
// run to completion, and every write is a single-row atomic operation, so
// no rollback is needed.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScope creates a task scope tied to parent.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Go schedules fn as a fire-and-forget task. Failures are logged, never
// surfaced: the store state simply does not change. A task scheduled
// after the scope was cancelled is dropped.
func (s *Scope) Go(op string, fn func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.ctx.Err() != nil {
			logger.Debug("Write dropped, scope cancelled", "op", op)
			return
		}

		if err := fn(); err != nil {
			logger.Warn("Write failed", "op", op, "error", err)
		}
	}()
}

// Cancel ends the scope. Pending tasks are dropped; running ones finish.
func (s *Scope) Cancel() {
	s.cancel()
}

// Wait blocks until all scheduled tasks have returned. Tests and shutdown
// paths use it; interactive callers never do.
func (s *Scope) Wait() {
	s.wg.Wait()
}

// Done exposes the scope's cancellation channel.
func (s *Scope) Done() <-chan struct{} {
	return s.ctx.Done()
}
