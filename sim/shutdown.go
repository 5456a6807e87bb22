package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// shutdownCoordinator owns the running flag's only writer and the final wake
// pass. It polls the roster on a fixed interval rather than being notified.
type shutdownCoordinator struct {
	running  *atomic.Bool
	arrivals *ArrivalSignal
	roster   *Roster
	stopWork context.CancelFunc
	interval time.Duration
	once     sync.Once
}

// awaitHelped blocks until every student has been helped, shutdown has
// already begun, or ctx is done.
func (c *shutdownCoordinator) awaitHelped(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for c.running.Load() && !c.roster.AllHelped() {
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// shutdown clears the running flag and then posts the arrival signal once and
// every completion signal once, so the TA and any student blocked on a signal
// wake up. Only the first call has any effect.
//
// The flag must be cleared before the posts: a student that still saw
// running==true after seating is then guaranteed a post from this pass.
func (c *shutdownCoordinator) shutdown(reason string) {
	c.once.Do(func() {
		logrus.Infof("Stopping office hours: %s", reason)
		c.running.Store(false)
		c.stopWork()
		c.arrivals.Post()
		for _, st := range c.roster.Students() {
			st.done.Post()
		}
	})
}
