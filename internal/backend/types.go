package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trend is the direction of a stats card.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Stat is a label/value/trend summary tile.
type Stat struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  Trend  `json:"trend"`
	Icon   string `json:"icon,omitempty"`
}

// Progress states shared by activities and tasks.
const (
	StatusCompleted  = "completed"
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
)

// Activity is one entry of a recent activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

// Notification kinds.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Notification is shown in the dashboard notification panel.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	ActionURL string    `json:"action_url,omitempty"`
}

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task is a unit of work assigned to a team member.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Project states.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on-hold"
)

// Project is a tracked construction or delivery project.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	TeamMembers []string        `json:"team_members"`
	Budget      decimal.Decimal `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
}

// Team member states.
const (
	MemberActive   = "active"
	MemberInactive = "inactive"
	MemberOnLeave  = "on-leave"
)

// TeamMember is a person in the supervisor's or employee's team.
type TeamMember struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Department     string    `json:"department"`
	Avatar         string    `json:"avatar,omitempty"`
	Status         string    `json:"status"`
	Performance    int       `json:"performance"`
	TasksCompleted int       `json:"tasks_completed"`
	JoinDate       time.Time `json:"join_date"`
}

// Order states.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is a supply order placed by a client.
type Order struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"order_date"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
}

// Stock states.
const (
	StockIn  = "in-stock"
	StockLow = "low-stock"
	StockOut = "out-of-stock"
)

// InventoryItem is a stocked material.
type InventoryItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	CurrentStock    int             `json:"current_stock"`
	MinimumRequired int             `json:"minimum_required"`
	Unit            string          `json:"unit"`
	Price           decimal.Decimal `json:"price"`
	Supplier        string          `json:"supplier"`
	LastRestocked   time.Time       `json:"last_restocked"`
	Status          string          `json:"status"`
}

// Invoice states.
const (
	InvoicePaid    = "paid"
	InvoicePending = "pending"
	InvoiceOverdue = "overdue"
)

// InvoiceItem is one billed line.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice is a bill issued to a customer.
type Invoice struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      time.Time       `json:"due_date"`
	Items        []InvoiceItem   `json:"items"`
}

// System user states.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// SystemUser is an account managed by the super admin.
type SystemUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
	Permissions []string  `json:"permissions"`
}

// Alert severities.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// SecurityAlert is raised by the security monitor.
type SecurityAlert struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	Resolved     bool      `json:"resolved"`
	AffectedUser string    `json:"affected_user,omitempty"`
}

// NamedValue is a chart data point.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardData is the payload of the dashboard section.
type DashboardData struct {
	Stats          []Stat        `json:"stats"`
	RecentActivity []Activity    `json:"recent_activity"`
	Notifications  Notifications `json:"notifications"`
}

// Notifications bundles the notification panel.
type Notifications struct {
	Count int            `json:"count"`
	Items []Notification `json:"items"`
}

// AnalyticsData is the payload of the analytics section.
type AnalyticsData struct {
	PerformanceTrends PerformanceTrends `json:"performance_trends"`
	EfficiencyScore   EfficiencyScore   `json:"efficiency_score"`
	GoalProgress      GoalProgress      `json:"goal_progress"`
	ChartData         []NamedValue      `json:"chart_data"`
	UserEngagement    UserEngagement    `json:"user_engagement"`
}

// PerformanceTrends is the monthly performance series.
type PerformanceTrends struct {
	Improvement string       `json:"improvement"`
	Period      string       `json:"period"`
	Data        []NamedValue `json:"data"`
}

// EfficiencyScore is a score out of MaxScore.
type EfficiencyScore struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Rating   string  `json:"rating"`
}

// GoalProgress is the completion of the current goal.
type GoalProgress struct {
	Percentage int    `json:"percentage"`
	Status     string `json:"status"`
}

// UserEngagement summarises platform usage.
type UserEngagement struct {
	ActiveUsers     int    `json:"active_users"`
	SessionDuration string `json:"session_duration"`
	BounceRate      string `json:"bounce_rate"`
}

// TeamData is the payload of the team section.
type TeamData struct {
	Members        []TeamMember `json:"members"`
	Stats          []Stat       `json:"stats"`
	RecentActivity []Activity   `json:"recent_activity"`
}

// ProjectsData is the payload of the projects section.
type ProjectsData struct {
	Projects       []Project  `json:"projects"`
	Stats          []Stat     `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
}

// TasksData is the payload of the tasks section.
type TasksData struct {
	Tasks          []Task     `json:"tasks"`
	Stats          []Stat     `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
}

// InventoryData is the payload of the inventory section.
type InventoryData struct {
	Items          []InventoryItem `json:"items"`
	Stats          []Stat          `json:"stats"`
	LowStockAlerts []InventoryItem `json:"low_stock_alerts"`
}

// OrdersData is the payload of the orders section.
type OrdersData struct {
	Orders         []Order    `json:"orders"`
	Stats          []Stat     `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
}

// InvoicesData is the payload of the invoices section.
type InvoicesData struct {
	Invoices       []Invoice  `json:"invoices"`
	Stats          []Stat     `json:"stats"`
	RecentActivity []Activity `json:"recent_activity"`
}

// UsersData is the payload of the users section.
type UsersData struct {
	Users          []SystemUser `json:"users"`
	Stats          []Stat       `json:"stats"`
	RecentActivity []Activity   `json:"recent_activity"`
}

// SecurityData is the payload of the security section.
type SecurityData struct {
	Alerts         []SecurityAlert `json:"alerts"`
	Stats          []Stat          `json:"stats"`
	RecentActivity []Activity      `json:"recent_activity"`
}
