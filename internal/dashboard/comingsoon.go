package dashboard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultComingSoon is shown for navigation entries that have no page yet.
const DefaultComingSoon = "This feature is currently under development and will be available soon."

// ComingSoonContent is the body of a placeholder page.
type ComingSoonContent struct {
	Description string
}

var titler = cases.Title(language.English)

// placeholders lists the navigation ids without a data section.
var placeholders = map[string]string{
	"settings":      "System Settings",
	"database":      "Database",
	"schedule":      "Schedule",
	"deliveries":    "Deliveries",
	"payments":      "Payments",
	"support":       "Support",
	"notifications": "Notifications",
	"timesheet":     "Timesheet",
	"messages":      "Messages",
}

// IsPlaceholder reports whether id is a navigation entry served by the
// coming soon page.
func IsPlaceholder(id string) bool {
	_, ok := placeholders[id]
	return ok
}

// ComingSoon returns the placeholder view for id. Ids without a known title
// are title-cased.
func ComingSoon(id string) View {
	title, ok := placeholders[id]
	if !ok {
		title = titler.String(Humanize(id))
	}
	return &view{
		name:     "coming-soon",
		title:    title,
		subtitle: "Coming soon",
		build: func(Input) (Model, error) {
			return Model{Content: ComingSoonContent{Description: DefaultComingSoon}}, nil
		},
	}
}
