// Package backend provides the data source behind every dashboard section.
// The only implementation is Mock, which fabricates fixtures after an
// artificial delay.
package backend

import (
	"context"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

// Response is the tagged envelope returned by every backend operation.
// Data is only meaningful when Success is true.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Backend exposes one operation per section. A returned error models a
// transport failure; Success=false models a backend-reported failure.
type Backend interface {
	GetDashboardData(ctx context.Context, user rbac.User) (Response[DashboardData], error)
	GetAnalyticsData(ctx context.Context, user rbac.User) (Response[AnalyticsData], error)
	GetTeamData(ctx context.Context, user rbac.User) (Response[TeamData], error)
	GetProjectsData(ctx context.Context, user rbac.User) (Response[ProjectsData], error)
	GetTasksData(ctx context.Context, user rbac.User) (Response[TasksData], error)
	GetInventoryData(ctx context.Context, user rbac.User) (Response[InventoryData], error)
	GetOrdersData(ctx context.Context, user rbac.User) (Response[OrdersData], error)
	GetInvoicesData(ctx context.Context, user rbac.User) (Response[InvoicesData], error)
	GetUsersData(ctx context.Context, user rbac.User) (Response[UsersData], error)
	GetSecurityData(ctx context.Context, user rbac.User) (Response[SecurityData], error)
}
