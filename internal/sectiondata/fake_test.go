package sectiondata

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/rbac"
)

// pending is one backend call parked until the test replies.
type pending struct {
	section string
	user    rbac.User
	reply   chan reply
}

type reply struct {
	data    any
	success bool
	message string
	err     error
}

func (p *pending) succeed(data any) {
	p.reply <- reply{data: data, success: true}
}

func (p *pending) fail(message string) {
	p.reply <- reply{message: message}
}

func (p *pending) broken(err error) {
	p.reply <- reply{err: err}
}

// fakeBackend parks every call on calls until the test answers it.
type fakeBackend struct {
	calls chan *pending
	count atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(chan *pending, 16)}
}

func (f *fakeBackend) next(t *testing.T) *pending {
	t.Helper()
	select {
	case p := <-f.calls:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for backend call")
		return nil
	}
}

func respond[T any](ctx context.Context, f *fakeBackend, section string, user rbac.User) (backend.Response[T], error) {
	f.count.Add(1)
	p := &pending{section: section, user: user, reply: make(chan reply, 1)}
	select {
	case f.calls <- p:
	case <-ctx.Done():
		return backend.Response[T]{}, ctx.Err()
	}
	select {
	case r := <-p.reply:
		if r.err != nil {
			return backend.Response[T]{}, r.err
		}
		var data T
		if r.data != nil {
			data = r.data.(T)
		}
		return backend.Response[T]{Success: r.success, Data: data, Error: r.message}, nil
	case <-ctx.Done():
		return backend.Response[T]{}, ctx.Err()
	}
}

func (f *fakeBackend) GetDashboardData(ctx context.Context, u rbac.User) (backend.Response[backend.DashboardData], error) {
	return respond[backend.DashboardData](ctx, f, "dashboard", u)
}

func (f *fakeBackend) GetAnalyticsData(ctx context.Context, u rbac.User) (backend.Response[backend.AnalyticsData], error) {
	return respond[backend.AnalyticsData](ctx, f, "analytics", u)
}

func (f *fakeBackend) GetTeamData(ctx context.Context, u rbac.User) (backend.Response[backend.TeamData], error) {
	return respond[backend.TeamData](ctx, f, "team", u)
}

func (f *fakeBackend) GetProjectsData(ctx context.Context, u rbac.User) (backend.Response[backend.ProjectsData], error) {
	return respond[backend.ProjectsData](ctx, f, "projects", u)
}

func (f *fakeBackend) GetTasksData(ctx context.Context, u rbac.User) (backend.Response[backend.TasksData], error) {
	return respond[backend.TasksData](ctx, f, "tasks", u)
}

func (f *fakeBackend) GetInventoryData(ctx context.Context, u rbac.User) (backend.Response[backend.InventoryData], error) {
	return respond[backend.InventoryData](ctx, f, "inventory", u)
}

func (f *fakeBackend) GetOrdersData(ctx context.Context, u rbac.User) (backend.Response[backend.OrdersData], error) {
	return respond[backend.OrdersData](ctx, f, "orders", u)
}

func (f *fakeBackend) GetInvoicesData(ctx context.Context, u rbac.User) (backend.Response[backend.InvoicesData], error) {
	return respond[backend.InvoicesData](ctx, f, "invoices", u)
}

func (f *fakeBackend) GetUsersData(ctx context.Context, u rbac.User) (backend.Response[backend.UsersData], error) {
	return respond[backend.UsersData](ctx, f, "users", u)
}

func (f *fakeBackend) GetSecurityData(ctx context.Context, u rbac.User) (backend.Response[backend.SecurityData], error) {
	return respond[backend.SecurityData](ctx, f, "security", u)
}

type observation struct {
	section string
	outcome string
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveFetch(section, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{section: section, outcome: outcome})
}

func (r *recordingObserver) count(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.seen {
		if o.outcome == outcome {
			n++
		}
	}
	return n
}

func tasksWith(ids ...string) backend.TasksData {
	data := backend.TasksData{}
	for _, id := range ids {
		data.Tasks = append(data.Tasks, backend.Task{ID: id, Title: id, Status: backend.StatusPending})
	}
	return data
}

func taskIDs(t *testing.T, s State) []string {
	t.Helper()
	data, ok := DataAs[backend.TasksData](s)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(data.Tasks))
	for _, task := range data.Tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
