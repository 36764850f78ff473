package engine

import (
	"time"

	"github.com/bamsammich/sweep/internal/event"
)

// Reporter receives reconciliation events. Implementations must be safe to
// call synchronously from the single engine goroutine.
type Reporter interface {
	Report(ev event.Event)
}

// report stamps and delivers an event, tolerating a nil reporter.
func report(rep Reporter, ev event.Event) {
	if rep == nil {
		return
	}
	ev.Timestamp = time.Now()
	rep.Report(ev)
}
