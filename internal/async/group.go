// Package async runs fire-and-forget work that must outlive the view that
// started it.
package async

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Group tracks detached tasks. Tasks are never cancelled; their errors are
// logged and otherwise dropped.
type Group struct {
	wg  sync.WaitGroup
	log logrus.FieldLogger

	mu       sync.Mutex
	inFlight int
}

// NewGroup creates a Group that logs task failures to log.
func NewGroup(log logrus.FieldLogger) *Group {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Group{log: log}
}

// Go starts fn in the background with a context that is never cancelled.
func (g *Group) Go(name string, fn func(ctx context.Context) error) {
	g.wg.Add(1)
	g.adjust(1)
	go func() {
		defer g.wg.Done()
		defer g.adjust(-1)
		defer func() {
			if r := recover(); r != nil {
				g.log.WithField("task", name).Errorf("task panicked: %v", r)
			}
		}()

		if err := fn(context.Background()); err != nil {
			g.log.WithField("task", name).WithError(err).Warn("background task failed")
		}
	}()
}

// InFlight returns the number of tasks still running.
func (g *Group) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// Wait blocks until every task started so far has finished.
func (g *Group) Wait() {
	g.wg.Wait()
}

// WaitTimeout waits at most d for running tasks. It returns an error if
// some were still running when the deadline passed.
func (g *Group) WaitTimeout(d time.Duration) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(d):
		return fmt.Errorf("%d background task(s) still running after %s", g.InFlight(), d)
	}
}

func (g *Group) adjust(delta int) {
	g.mu.Lock()
	g.inFlight += delta
	g.mu.Unlock()
}
