package shell

import (
	"sync"
	"time"

	"github.com/buildtrack/buildtrack/internal/content"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

// Gauge receives the number of live shells.
type Gauge interface {
	SetActiveShells(n int)
}

// Registry keeps the live shells of the process keyed by session id.
type Registry struct {
	client *sectiondata.Client
	router content.Router
	gauge  Gauge

	mu     sync.Mutex
	shells map[string]*Shell
}

// NewRegistry constructs an empty Registry. gauge may be nil.
func NewRegistry(client *sectiondata.Client, router content.Router, gauge Gauge) *Registry {
	return &Registry{
		client: client,
		router: router,
		gauge:  gauge,
		shells: make(map[string]*Shell),
	}
}

// Get returns the shell of session id.
func (r *Registry) Get(id string) (*Shell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shells[id]
	return s, ok
}

// Login signs user in on the shell of id, creating the shell if needed.
func (r *Registry) Login(id string, user rbac.User) *Shell {
	r.mu.Lock()
	s, ok := r.shells[id]
	if !ok {
		s = New(r.client, r.router)
		r.shells[id] = s
	}
	n := len(r.shells)
	r.mu.Unlock()
	r.report(n)
	s.Login(user)
	return s
}

// Restore returns the shell of id. A process that lost the shell, e.g.
// after a restart, rebuilds it from the session user and active section.
func (r *Registry) Restore(id string, user rbac.User, active string) *Shell {
	r.mu.Lock()
	if s, ok := r.shells[id]; ok {
		r.mu.Unlock()
		return s
	}
	s := New(r.client, r.router)
	r.shells[id] = s
	n := len(r.shells)
	r.mu.Unlock()
	r.report(n)
	s.Login(user)
	if active != "" && active != DefaultSection {
		s.Select(active)
	}
	return s
}

// Remove signs the shell of id out and forgets it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.shells[id]
	delete(r.shells, id)
	n := len(r.shells)
	r.mu.Unlock()
	if ok {
		s.Logout()
	}
	r.report(n)
}

// forget drops s from id unless another shell replaced it already.
func (r *Registry) forget(id string, s *Shell) {
	r.mu.Lock()
	if r.shells[id] == s {
		delete(r.shells, id)
	}
	n := len(r.shells)
	r.mu.Unlock()
	r.report(n)
}

// Sweep removes shells idle for longer than idle and returns how many went.
func (r *Registry) Sweep(now time.Time, idle time.Duration) int {
	r.mu.Lock()
	var stale []*Shell
	for id, s := range r.shells {
		if now.Sub(s.LastSeen()) > idle {
			stale = append(stale, s)
			delete(r.shells, id)
		}
	}
	n := len(r.shells)
	r.mu.Unlock()
	for _, s := range stale {
		s.Logout()
	}
	r.report(n)
	return len(stale)
}

// Len returns the number of live shells.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}

// Close signs every shell out.
func (r *Registry) Close() {
	r.mu.Lock()
	shells := r.shells
	r.shells = make(map[string]*Shell)
	r.mu.Unlock()
	for _, s := range shells {
		s.Logout()
	}
	r.report(0)
}

func (r *Registry) report(n int) {
	if r.gauge != nil {
		r.gauge.SetActiveShells(n)
	}
}
