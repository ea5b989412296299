package sectiondata

import (
	"context"
	"sync"
	"time"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

// State is a snapshot of a Query.
type State struct {
	Data    any
	Loading bool
	Err     error
	Updated time.Time
}

// Ready reports whether the state carries data and nothing is pending.
func (s State) Ready() bool {
	return !s.Loading && s.Err == nil && s.Data != nil
}

// DataAs extracts the payload of s as T.
func DataAs[T any](s State) (T, bool) {
	v, ok := s.Data.(T)
	return v, ok
}

// Query tracks the fetch state of one section for the user it is bound to.
//
// Every fetch takes the next sequence number. A completion is applied only
// when its sequence is newer than the last applied one, and Loading clears
// only when the most recently issued fetch settles. Data of the previous
// fetch stays visible while a refresh is in flight.
type Query struct {
	client  *Client
	section Section
	ctx     context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	user      *rbac.User
	state     State
	issued    uint64
	applied   uint64
	closed    bool
	changed   chan struct{}
	listeners []func(State)
}

// NewQuery creates an unbound query for section. Nothing is fetched until a
// user is bound.
func (c *Client) NewQuery(section Section) *Query {
	ctx, cancel := context.WithCancel(context.Background())
	return &Query{
		client:  c,
		section: section,
		ctx:     ctx,
		cancel:  cancel,
		changed: make(chan struct{}),
	}
}

// Section returns the section the query fetches.
func (q *Query) Section() Section {
	return q.section
}

// OnChange registers fn to be called after every state transition.
func (q *Query) OnChange(fn func(State)) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.listeners = append(q.listeners, fn)
	q.mu.Unlock()
}

// Bind sets the user and fetches when the identity changed. Binding nil
// clears the data and drops every in-flight result.
func (q *Query) Bind(user *rbac.User) {
	q.mu.Lock()
	if q.closed || sameUser(q.user, user) {
		q.mu.Unlock()
		return
	}
	if user == nil {
		q.user = nil
		q.applied = q.issued
		q.state = State{}
		q.publishLocked()
		return
	}
	u := *user
	if q.user != nil {
		// A different principal must never see the previous one's rows.
		q.applied = q.issued
		q.state = State{}
	}
	q.user = &u
	q.issueLocked()
}

// Refresh re-fetches the section. It is a no-op for an unbound query.
func (q *Query) Refresh() {
	q.mu.Lock()
	if q.closed || q.user == nil {
		q.mu.Unlock()
		return
	}
	q.issueLocked()
}

// State returns the current snapshot.
func (q *Query) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Wait blocks until no fetch is pending or ctx is done.
func (q *Query) Wait(ctx context.Context) error {
	for {
		q.mu.Lock()
		pending := q.state.Loading && !q.closed
		ch := q.changed
		q.mu.Unlock()
		if !pending {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ch:
		}
	}
}

// Close detaches the query. Results arriving afterwards are discarded.
func (q *Query) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.state.Loading = false
	q.listeners = nil
	close(q.changed)
	q.changed = make(chan struct{})
	q.mu.Unlock()
	q.cancel()
}

// issueLocked starts a fetch and releases q.mu.
func (q *Query) issueLocked() {
	q.issued++
	seq := q.issued
	user := *q.user
	q.state.Loading = true
	q.state.Err = nil
	q.publishLocked()

	go func() {
		data, err := q.client.Fetch(q.ctx, q.section, &user)
		q.complete(seq, data, err)
	}()
}

func (q *Query) complete(seq uint64, data any, err error) {
	q.mu.Lock()
	if q.closed || seq <= q.applied {
		q.mu.Unlock()
		q.client.observe(q.section, outcomeDiscarded, 0)
		return
	}
	q.applied = seq
	if err != nil {
		q.state.Err = err
	} else {
		q.state.Data = data
		q.state.Err = nil
	}
	if seq == q.issued {
		q.state.Loading = false
	}
	q.state.Updated = time.Now()
	q.publishLocked()
}

// publishLocked wakes waiters, releases q.mu and notifies listeners.
func (q *Query) publishLocked() {
	close(q.changed)
	q.changed = make(chan struct{})
	snapshot := q.state
	listeners := append([]func(State){}, q.listeners...)
	q.mu.Unlock()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func sameUser(a, b *rbac.User) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil || b == nil:
		return false
	default:
		return a.ID == b.ID && a.Role == b.Role
	}
}
