package backend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

// operation describes one simulated backend endpoint.
type operation struct {
	section string
	label   string
	latency time.Duration
}

var (
	opDashboard = operation{section: "dashboard", label: "Dashboard", latency: 500 * time.Millisecond}
	opAnalytics = operation{section: "analytics", label: "Analytics", latency: 400 * time.Millisecond}
	opTeam      = operation{section: "team", label: "Team", latency: 600 * time.Millisecond}
	opProjects  = operation{section: "projects", label: "Projects", latency: 500 * time.Millisecond}
	opTasks     = operation{section: "tasks", label: "Tasks", latency: 400 * time.Millisecond}
	opInventory = operation{section: "inventory", label: "Inventory", latency: 700 * time.Millisecond}
	opOrders    = operation{section: "orders", label: "Orders", latency: 500 * time.Millisecond}
	opInvoices  = operation{section: "invoices", label: "Invoices", latency: 450 * time.Millisecond}
	opUsers     = operation{section: "users", label: "Users", latency: 600 * time.Millisecond}
	opSecurity  = operation{section: "security", label: "Security", latency: 550 * time.Millisecond}
)

// MockOptions tunes the simulated backend.
type MockOptions struct {
	// LatencyScale multiplies every per-section delay. Zero disables delays.
	LatencyScale float64
	// FailureRate is the probability in [0,1] of a Success=false envelope.
	FailureRate float64
	// Rand overrides the random source. Nil seeds one from the clock.
	Rand *rand.Rand
	// Now overrides the clock used for fixture timestamps.
	Now    func() time.Time
	Logger *slog.Logger
}

// Mock is an in-memory Backend returning random fixtures after a delay.
type Mock struct {
	mu          sync.Mutex
	rng         *rand.Rand
	scale       float64
	failureRate float64
	now         func() time.Time
	logger      *slog.Logger
}

var _ Backend = (*Mock)(nil)

// NewMock constructs a Mock.
func NewMock(opts MockOptions) *Mock {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	scale := opts.LatencyScale
	if scale < 0 {
		scale = 0
	}
	failure := opts.FailureRate
	switch {
	case failure < 0:
		failure = 0
	case failure > 1:
		failure = 1
	}
	return &Mock{rng: rng, scale: scale, failureRate: failure, now: now, logger: logger}
}

// Latency reports the effective delay applied to the section.
func (m *Mock) Latency(section string) time.Duration {
	for _, op := range []operation{opDashboard, opAnalytics, opTeam, opProjects, opTasks, opInventory, opOrders, opInvoices, opUsers, opSecurity} {
		if op.section == section {
			return m.scaled(op.latency)
		}
	}
	return 0
}

func (m *Mock) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) * m.scale)
}

// GetDashboardData returns role stats, recent activity and notifications.
func (m *Mock) GetDashboardData(ctx context.Context, user rbac.User) (Response[DashboardData], error) {
	return serve(ctx, m, opDashboard, func(g *generator) DashboardData {
		return DashboardData{
			Stats:          g.stats(opDashboard.section, user.Role),
			RecentActivity: g.activities(5),
			Notifications: Notifications{
				Count: g.rng.IntN(10),
				Items: g.notifications(5),
			},
		}
	})
}

// GetAnalyticsData returns the fixed analytics payload.
func (m *Mock) GetAnalyticsData(ctx context.Context, _ rbac.User) (Response[AnalyticsData], error) {
	return serve(ctx, m, opAnalytics, func(*generator) AnalyticsData {
		return analyticsFixture()
	})
}

// GetTeamData returns team members with role stats.
func (m *Mock) GetTeamData(ctx context.Context, user rbac.User) (Response[TeamData], error) {
	return serve(ctx, m, opTeam, func(g *generator) TeamData {
		return TeamData{
			Members:        g.members(12),
			Stats:          g.stats(opTeam.section, user.Role),
			RecentActivity: g.activities(6),
		}
	})
}

// GetProjectsData returns projects with role stats.
func (m *Mock) GetProjectsData(ctx context.Context, user rbac.User) (Response[ProjectsData], error) {
	return serve(ctx, m, opProjects, func(g *generator) ProjectsData {
		return ProjectsData{
			Projects:       g.projects(8),
			Stats:          g.stats(opProjects.section, user.Role),
			RecentActivity: g.activities(5),
		}
	})
}

// GetTasksData returns tasks with role stats.
func (m *Mock) GetTasksData(ctx context.Context, user rbac.User) (Response[TasksData], error) {
	return serve(ctx, m, opTasks, func(g *generator) TasksData {
		return TasksData{
			Tasks:          g.tasks(15),
			Stats:          g.stats(opTasks.section, user.Role),
			RecentActivity: g.activities(5),
		}
	})
}

// GetInventoryData returns stocked items and the ones below minimum.
func (m *Mock) GetInventoryData(ctx context.Context, user rbac.User) (Response[InventoryData], error) {
	return serve(ctx, m, opInventory, func(g *generator) InventoryData {
		items := g.inventory(20)
		return InventoryData{
			Items:          items,
			Stats:          g.stats(opInventory.section, user.Role),
			LowStockAlerts: LowStock(items),
		}
	})
}

// GetOrdersData returns orders with role stats.
func (m *Mock) GetOrdersData(ctx context.Context, user rbac.User) (Response[OrdersData], error) {
	return serve(ctx, m, opOrders, func(g *generator) OrdersData {
		return OrdersData{
			Orders:         g.orders(20),
			Stats:          g.stats(opOrders.section, user.Role),
			RecentActivity: g.activities(5),
		}
	})
}

// GetInvoicesData returns invoices with role stats.
func (m *Mock) GetInvoicesData(ctx context.Context, user rbac.User) (Response[InvoicesData], error) {
	return serve(ctx, m, opInvoices, func(g *generator) InvoicesData {
		return InvoicesData{
			Invoices:       g.invoices(15),
			Stats:          g.stats(opInvoices.section, user.Role),
			RecentActivity: g.activities(4),
		}
	})
}

// GetUsersData returns the managed system accounts.
func (m *Mock) GetUsersData(ctx context.Context, user rbac.User) (Response[UsersData], error) {
	return serve(ctx, m, opUsers, func(g *generator) UsersData {
		return UsersData{
			Users:          g.users(30),
			Stats:          g.stats(opUsers.section, user.Role),
			RecentActivity: g.activities(6),
		}
	})
}

// GetSecurityData returns security alerts.
func (m *Mock) GetSecurityData(ctx context.Context, user rbac.User) (Response[SecurityData], error) {
	return serve(ctx, m, opSecurity, func(g *generator) SecurityData {
		return SecurityData{
			Alerts:         g.alerts(12),
			Stats:          g.stats(opSecurity.section, user.Role),
			RecentActivity: g.activities(5),
		}
	})
}

// LowStock filters items that are low or out of stock.
func LowStock(items []InventoryItem) []InventoryItem {
	out := make([]InventoryItem, 0, len(items))
	for _, item := range items {
		if item.Status == StockLow || item.Status == StockOut {
			out = append(out, item)
		}
	}
	return out
}

func serve[T any](ctx context.Context, m *Mock, op operation, build func(*generator) T) (Response[T], error) {
	if err := m.wait(ctx, m.scaled(op.latency)); err != nil {
		return Response[T]{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failureRate > 0 && m.rng.Float64() < m.failureRate {
		m.logger.Debug("mock backend injected failure", slog.String("section", op.section))
		return Response[T]{Success: false, Error: "Failed to fetch " + op.section + " data"}, nil
	}
	g := &generator{rng: m.rng, now: m.now()}
	return Response[T]{
		Success: true,
		Data:    build(g),
		Message: op.label + " data retrieved successfully",
	}, nil
}

func (m *Mock) wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
