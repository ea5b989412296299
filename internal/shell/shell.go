// Package shell holds the signed-in application frame: the current user, the
// active section and the view mounted for it.
package shell

import (
	"context"
	"sync"
	"time"

	"github.com/buildtrack/buildtrack/internal/content"
	"github.com/buildtrack/buildtrack/internal/dashboard"
	"github.com/buildtrack/buildtrack/internal/navigation"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

// DefaultSection is active after login and logout.
const DefaultSection = "dashboard"

// Phase is the render state of the mounted view.
type Phase string

const (
	PhaseSignedOut Phase = "signed-out"
	PhaseLoading   Phase = "loading"
	PhaseError     Phase = "error"
	PhaseReady     Phase = "ready"
)

// Screen is a snapshot of the content area.
type Screen struct {
	Section string
	View    dashboard.View
	Phase   Phase
	Err     error
	Message string
	Model   dashboard.Model
	States  map[sectiondata.Section]sectiondata.State
}

// Sidebar is the navigation column of the frame.
type Sidebar struct {
	Items     []navigation.Item
	Active    string
	UserName  string
	Email     string
	RoleLabel string
	Initials  string
}

// Shell is the state of one browser session. It is safe for concurrent use.
type Shell struct {
	client *sectiondata.Client
	router content.Router
	now    func() time.Time

	mu       sync.Mutex
	user     *rbac.User
	active   string
	view     dashboard.View
	group    *sectiondata.Group
	lastSeen time.Time
}

// New constructs a signed-out Shell.
func New(client *sectiondata.Client, router content.Router) *Shell {
	s := &Shell{client: client, router: router, now: time.Now, active: DefaultSection}
	s.lastSeen = s.now()
	return s
}

// Login signs user in and mounts the dashboard. Signing in a different
// user replaces the previous one and all of its data.
func (s *Shell) Login(user rbac.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmountLocked()
	u := user
	s.user = &u
	s.active = DefaultSection
	s.mountLocked()
}

// Logout drops the user, closes the mounted view and resets the active
// section.
func (s *Shell) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmountLocked()
	s.user = nil
	s.active = DefaultSection
}

// Select makes section active. The previous view is closed before the next
// one mounts, so its late results are discarded. Selecting the active
// section keeps the mounted view. Sections missing from the navigation of
// the signed-in role fall back to the dashboard.
func (s *Shell) Select(section string) string {
	id := s.router.Canonical(section)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	if s.user != nil && !navigation.Contains(navigation.ForRole(s.user.Role), id) {
		id = DefaultSection
	}
	if id == s.active && s.group != nil {
		return id
	}
	s.unmountLocked()
	s.active = id
	if s.user != nil {
		s.mountLocked()
	}
	return id
}

// User returns a copy of the signed-in user, or nil.
func (s *Shell) User() *rbac.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Active returns the active section id.
func (s *Shell) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Sidebar returns the navigation of the signed-in role.
func (s *Shell) Sidebar() Sidebar {
	s.mu.Lock()
	defer s.mu.Unlock()
	sb := Sidebar{Active: s.active}
	if s.user == nil {
		return sb
	}
	sb.Items = navigation.ForRole(s.user.Role)
	sb.UserName = s.user.Name
	sb.Email = s.user.Email
	sb.RoleLabel = s.user.Role.Label()
	sb.Initials = s.user.Initials()
	return sb
}

// View returns the mounted view, or nil when signed out.
func (s *Shell) View() dashboard.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Wait blocks until the mounted view settles or ctx is done.
func (s *Shell) Wait(ctx context.Context) error {
	group := s.mountedGroup()
	if group == nil {
		return nil
	}
	return group.Wait(ctx)
}

// Refresh re-fetches every section of the mounted view and waits for them.
// The returned error is the first section failure.
func (s *Shell) Refresh(ctx context.Context) error {
	group := s.mountedGroup()
	if group == nil {
		return nil
	}
	return group.RefreshAll(ctx)
}

// Screen snapshots the content area. Loading wins over errors, errors win
// over data.
func (s *Shell) Screen() Screen {
	s.mu.Lock()
	user, view, group, active := s.user, s.view, s.group, s.active
	s.touchLocked()
	s.mu.Unlock()

	screen := Screen{Section: active, View: view}
	if user == nil || view == nil {
		screen.Phase = PhaseSignedOut
		return screen
	}
	screen.States = group.States()
	if group.Loading() {
		screen.Phase = PhaseLoading
		return screen
	}
	if err := group.Err(); err != nil {
		screen.Phase = PhaseError
		screen.Err = err
		screen.Message = sectiondata.Message(err)
		return screen
	}
	model, err := view.Build(dashboard.Input{User: *user, States: screen.States, Now: s.now()})
	if err != nil {
		screen.Phase = PhaseError
		screen.Err = err
		screen.Message = sectiondata.MsgFetchDefault
		return screen
	}
	screen.Phase = PhaseReady
	screen.Model = model
	return screen
}

// Loaded returns the data of section when the mounted view holds a settled,
// successful result for it.
func (s *Shell) Loaded(section sectiondata.Section) (any, bool) {
	group := s.mountedGroup()
	if group == nil {
		return nil, false
	}
	q := group.Query(section)
	if q == nil {
		return nil, false
	}
	state := q.State()
	if !state.Ready() {
		return nil, false
	}
	return state.Data, true
}

// Close releases the mounted view.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unmountLocked()
}

// LastSeen reports when the shell was last used.
func (s *Shell) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Shell) mountedGroup() *sectiondata.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.group
}

func (s *Shell) mountLocked() {
	s.view = s.router.Resolve(s.active, s.user)
	s.group = s.client.NewGroup(s.view.Sections()...)
	s.group.Bind(s.user)
	s.touchLocked()
}

func (s *Shell) unmountLocked() {
	if s.group != nil {
		s.group.Close()
	}
	s.group = nil
	s.view = nil
}

func (s *Shell) touchLocked() {
	s.lastSeen = s.now()
}
