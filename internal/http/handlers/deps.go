package handlers

import (
	"sync"
	"time"

	intconfig "courtbook/internal/config"
	"courtbook/internal/notify"
	"courtbook/internal/otp"
	"courtbook/internal/repositories"
	"courtbook/internal/scheduler"
	"courtbook/internal/submit"
	"courtbook/internal/ws"
)

// Deps bundles the process singletons the booking handlers work against.
// main wires the real thing, tests swap in fakes.
type Deps struct {
	Env      intconfig.Env
	Repo     repositories.BookingRepo
	Codes    *otp.Store
	Tasks    *scheduler.Scheduler
	Notifier *notify.Dispatcher
	Hub      *ws.Hub
	Form     *submit.Client
	Loc      *time.Location

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

// SetDeps stores the active dependency set for the handler functions.
func SetDeps(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now().In(d.location())
	}
	return time.Now().In(d.location())
}

func (d Deps) location() *time.Location {
	if d.Loc != nil {
		return d.Loc
	}
	return time.Local
}
