package backend

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

const day = 24 * time.Hour

// generator builds one response worth of fixtures. It borrows the Mock's
// random source, so callers hold the Mock lock while using it.
type generator struct {
	rng *rand.Rand
	now time.Time
}

func (g *generator) stats(section string, role rbac.Role) []Stat {
	return StatsFor(section, role)
}

// above mirrors the weighted cascades of the fixture templates: each call
// draws a fresh sample.
func (g *generator) above(p float64) bool {
	return g.rng.Float64() > p
}

func (g *generator) ago(window time.Duration) time.Time {
	return g.now.Add(-time.Duration(g.rng.Int64N(int64(window))))
}

func pick[T any](g *generator, values []T) T {
	return values[g.rng.IntN(len(values))]
}

var activityTemplates = []Activity{
	{Type: "task", Description: "Task completed: Review project documentation", Status: StatusCompleted},
	{Type: "message", Description: "New message received from team member", Status: StatusPending},
	{Type: "meeting", Description: "Meeting scheduled for tomorrow", Status: StatusPending},
	{Type: "system", Description: "Profile settings updated", Status: StatusCompleted},
	{Type: "project", Description: "Project milestone reached", Status: StatusCompleted},
	{Type: "order", Description: "New order received", Status: StatusPending},
	{Type: "inventory", Description: "Stock level updated", Status: StatusCompleted},
	{Type: "user", Description: "New user registered", Status: StatusPending},
}

func (g *generator) activities(count int) []Activity {
	count = min(count, len(activityTemplates))
	out := make([]Activity, count)
	for i := range count {
		a := activityTemplates[i]
		a.ID = fmt.Sprintf("activity-%d", i)
		a.Timestamp = g.now.Add(-time.Duration(i) * time.Hour)
		out[i] = a
	}
	return out
}

var taskTemplates = []struct {
	title    string
	priority string
}{
	{"Review project documentation", PriorityHigh},
	{"Update client presentation", PriorityMedium},
	{"Submit weekly report", PriorityHigh},
	{"Team meeting preparation", PriorityLow},
	{"Code review for new feature", PriorityMedium},
	{"Update system documentation", PriorityLow},
	{"Client feedback analysis", PriorityHigh},
	{"Performance optimization", PriorityMedium},
}

func (g *generator) tasks(count int) []Task {
	count = min(count, len(taskTemplates))
	out := make([]Task, count)
	for i := range count {
		tpl := taskTemplates[i]
		status := StatusPending
		switch {
		case g.above(0.7):
			status = StatusCompleted
		case g.above(0.5):
			status = StatusInProgress
		}
		out[i] = Task{
			ID:          fmt.Sprintf("task-%d", i),
			Title:       tpl.title,
			Description: "Complete " + strings.ToLower(tpl.title),
			Priority:    tpl.priority,
			Status:      status,
			DueDate:     g.now.Add(time.Duration(i+1) * day),
			CreatedAt:   g.now.Add(-time.Duration(i) * 12 * time.Hour),
		}
	}
	return out
}

var projectTemplates = []struct {
	name        string
	description string
}{
	{"Website Redesign", "Complete overhaul of company website"},
	{"Mobile App Development", "New mobile application for customers"},
	{"Database Migration", "Migrate to new database system"},
	{"Security Audit", "Comprehensive security review"},
	{"API Integration", "Third-party API integration"},
	{"Performance Optimization", "System performance improvements"},
}

func (g *generator) projects(count int) []Project {
	count = min(count, len(projectTemplates))
	out := make([]Project, count)
	for i := range count {
		tpl := projectTemplates[i]
		status := ProjectOnHold
		switch {
		case g.above(0.7):
			status = ProjectCompleted
		case g.above(0.5):
			status = ProjectActive
		}
		budget := decimal.NewFromInt(int64(10000 + i*5000))
		out[i] = Project{
			ID:          fmt.Sprintf("project-%d", i),
			Name:        tpl.name,
			Description: tpl.description,
			Status:      status,
			Progress:    g.rng.IntN(100),
			StartDate:   g.now.Add(-time.Duration(30+i*10) * day),
			TeamMembers: []string{fmt.Sprintf("Member %d", i+1), fmt.Sprintf("Member %d", i+2)},
			Budget:      budget,
			Spent:       budget.Mul(decimal.NewFromFloat(g.rng.Float64())).Floor(),
		}
	}
	return out
}

var memberNames = []string{
	"Alice Cooper", "Bob Martinez", "Carol Davis", "David Wilson",
	"Eve Johnson", "Frank Brown", "Grace Lee", "Henry Taylor",
	"Ivy Chen", "Jack Smith", "Kate Anderson", "Liam Garcia",
}

func (g *generator) members(count int) []TeamMember {
	count = min(count, len(memberNames))
	out := make([]TeamMember, count)
	for i := range count {
		name := memberNames[i]
		title := "Junior Developer"
		switch {
		case g.above(0.7):
			title = "Senior Developer"
		case g.above(0.5):
			title = "Developer"
		}
		department := "Design"
		if g.above(0.5) {
			department = "Engineering"
		}
		status := MemberActive
		switch {
		case g.above(0.9):
			status = MemberOnLeave
		case g.above(0.95):
			status = MemberInactive
		}
		out[i] = TeamMember{
			ID:             fmt.Sprintf("member-%d", i),
			Name:           name,
			Email:          strings.ToLower(strings.Replace(name, " ", ".", 1)) + "@company.com",
			Role:           title,
			Department:     department,
			Status:         status,
			Performance:    g.rng.IntN(40) + 60,
			TasksCompleted: g.rng.IntN(50) + 10,
			JoinDate:       g.ago(365 * day),
		}
	}
	return out
}

var customers = []string{"Acme Corp", "BuildCo Ltd", "TechStart Inc", "Global Solutions", "Metro Construction"}

var orderCatalog = []struct {
	name  string
	price int64
}{
	{"Construction Materials", 150},
	{"Steel Rods", 200},
	{"Cement Bags", 25},
	{"Sand", 30},
	{"Gravel", 40},
}

func (g *generator) orders(count int) []Order {
	out := make([]Order, count)
	for i := range count {
		status := OrderPending
		switch {
		case g.above(0.8):
			status = OrderDelivered
		case g.above(0.6):
			status = OrderShipped
		case g.above(0.4):
			status = OrderProcessing
		}
		placed := g.ago(30 * day)
		order := Order{
			ID:           fmt.Sprintf("ORD-%03d", i+1),
			CustomerName: pick(g, customers),
			Items: []OrderItem{{
				Name:     pick(g, orderCatalog).name,
				Quantity: g.rng.IntN(10) + 1,
				Price:    decimal.NewFromInt(pick(g, orderCatalog).price),
			}},
			Total:     decimal.NewFromInt(int64(g.rng.IntN(5000) + 500)),
			Status:    status,
			OrderDate: placed,
		}
		if status == OrderDelivered {
			delivered := g.now.Add(-time.Duration(g.rng.IntN(3)) * day)
			order.DeliveryDate = &delivered
		}
		out[i] = order
	}
	return out
}

var inventoryTemplates = []struct {
	name     string
	category string
	unit     string
	price    int64
}{
	{"Steel Rods", "Construction", "pieces", 25},
	{"Cement Bags", "Construction", "bags", 15},
	{"Sand", "Construction", "cubic yards", 30},
	{"Gravel", "Construction", "tons", 45},
	{"Bricks", "Construction", "pieces", 2},
	{"Paint", "Finishing", "gallons", 35},
	{"Tiles", "Finishing", "sq ft", 8},
	{"Pipes", "Plumbing", "feet", 12},
}

// StockStatus classifies a stock level against its minimum.
func StockStatus(current, minimum int) string {
	switch {
	case current == 0:
		return StockOut
	case current < minimum:
		return StockLow
	default:
		return StockIn
	}
}

func (g *generator) inventory(count int) []InventoryItem {
	count = min(count, len(inventoryTemplates))
	out := make([]InventoryItem, count)
	for i := range count {
		tpl := inventoryTemplates[i]
		current := g.rng.IntN(100)
		minimum := g.rng.IntN(20) + 5
		out[i] = InventoryItem{
			ID:              fmt.Sprintf("item-%d", i),
			Name:            tpl.name,
			Category:        tpl.category,
			CurrentStock:    current,
			MinimumRequired: minimum,
			Unit:            tpl.unit,
			Price:           decimal.NewFromInt(tpl.price),
			Supplier:        fmt.Sprintf("Supplier %d", i%3+1),
			LastRestocked:   g.ago(30 * day),
			Status:          StockStatus(current, minimum),
		}
	}
	return out
}

func (g *generator) invoices(count int) []Invoice {
	out := make([]Invoice, count)
	for i := range count {
		status := InvoiceOverdue
		switch {
		case g.above(0.7):
			status = InvoicePaid
		case g.above(0.5):
			status = InvoicePending
		}
		out[i] = Invoice{
			ID:           fmt.Sprintf("INV-%04d", i+1),
			CustomerName: pick(g, customers),
			Amount:       decimal.NewFromInt(int64(g.rng.IntN(10000) + 1000)),
			Status:       status,
			IssueDate:    g.ago(60 * day),
			DueDate:      g.now.Add(time.Duration(g.rng.Int64N(int64(30 * day)))),
			Items: []InvoiceItem{{
				Description: "Professional Services",
				Quantity:    1,
				Rate:        decimal.NewFromInt(int64(g.rng.IntN(5000) + 1000)),
				Amount:      decimal.NewFromInt(int64(g.rng.IntN(5000) + 1000)),
			}},
		}
	}
	return out
}

var (
	userNames = []string{
		"John Smith", "Sarah Johnson", "Mike Wilson", "Lisa Anderson", "Tom Brown",
		"Emma Davis", "Chris Lee", "Anna Taylor", "Mark Garcia", "Julia Martinez",
	}
	userTitles = []string{"Admin", "Manager", "Developer", "Designer", "Analyst"}
)

func (g *generator) users(count int) []SystemUser {
	out := make([]SystemUser, count)
	for i := range count {
		status := UserActive
		switch {
		case g.above(0.9):
			status = UserInactive
		case g.above(0.95):
			status = UserSuspended
		}
		scope := "user"
		if g.above(0.5) {
			scope = "admin"
		}
		out[i] = SystemUser{
			ID:          fmt.Sprintf("user-%d", i),
			Name:        userNames[i%len(userNames)],
			Email:       fmt.Sprintf("user%d@company.com", i),
			Role:        pick(g, userTitles),
			Status:      status,
			LastLogin:   g.ago(7 * day),
			CreatedAt:   g.ago(365 * day),
			Permissions: []string{"read", "write", scope},
		}
	}
	return out
}

var (
	alertTypes      = []string{"login", "access", "system", "data"}
	alertSeverities = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	alertMessages   = []string{
		"Suspicious login attempt detected",
		"Unauthorized access attempt",
		"System vulnerability found",
		"Data breach attempt blocked",
		"Multiple failed login attempts",
		"Unusual network activity",
		"Security policy violation",
		"Malware detection alert",
	}
)

func (g *generator) alerts(count int) []SecurityAlert {
	out := make([]SecurityAlert, count)
	for i := range count {
		alert := SecurityAlert{
			ID:        fmt.Sprintf("alert-%d", i),
			Type:      pick(g, alertTypes),
			Severity:  pick(g, alertSeverities),
			Message:   pick(g, alertMessages),
			Timestamp: g.ago(7 * day),
			Resolved:  g.above(0.3),
		}
		if g.above(0.5) {
			alert.AffectedUser = fmt.Sprintf("user%d@company.com", g.rng.IntN(10))
		}
		out[i] = alert
	}
	return out
}

var notificationTemplates = []Notification{
	{Title: "New Message", Message: "You have a new message from your team", Type: NotificationInfo},
	{Title: "Task Due Soon", Message: "Project review is due tomorrow", Type: NotificationWarning},
	{Title: "Task Completed", Message: "Your task has been completed successfully", Type: NotificationSuccess},
	{Title: "System Alert", Message: "System maintenance scheduled", Type: NotificationError},
	{Title: "New Assignment", Message: "You have been assigned a new project", Type: NotificationInfo},
}

func (g *generator) notifications(count int) []Notification {
	count = min(count, len(notificationTemplates))
	out := make([]Notification, count)
	for i := range count {
		n := notificationTemplates[i]
		n.ID = fmt.Sprintf("notification-%d", i)
		n.Timestamp = g.now.Add(-time.Duration(i) * time.Hour)
		n.Read = g.above(0.5)
		out[i] = n
	}
	return out
}

func analyticsFixture() AnalyticsData {
	return AnalyticsData{
		PerformanceTrends: PerformanceTrends{
			Improvement: "+23.5%",
			Period:      "Last 30 days",
			Data: []NamedValue{
				{Name: "Jan", Value: 400},
				{Name: "Feb", Value: 300},
				{Name: "Mar", Value: 600},
				{Name: "Apr", Value: 800},
				{Name: "May", Value: 700},
			},
		},
		EfficiencyScore: EfficiencyScore{Score: 8.7, MaxScore: 10, Rating: "Excellent"},
		GoalProgress:    GoalProgress{Percentage: 78, Status: "On track"},
		ChartData: []NamedValue{
			{Name: "Performance", Value: 85},
			{Name: "Efficiency", Value: 92},
			{Name: "Quality", Value: 88},
			{Name: "Satisfaction", Value: 94},
		},
		UserEngagement: UserEngagement{ActiveUsers: 1234, SessionDuration: "4m 32s", BounceRate: "23%"},
	}
}
