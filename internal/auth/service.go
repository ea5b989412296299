package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

// DefaultDelay is the simulated sign-in latency.
const DefaultDelay = time.Second

// Service signs users in. There is no credential store: any well-formed
// email and password are accepted for the chosen role.
type Service struct {
	perms *rbac.Service
	delay time.Duration
	now   func() time.Time
	newID func() string
}

// NewService constructs a Service. A negative delay disables the wait.
func NewService(perms *rbac.Service, delay time.Duration) *Service {
	if perms == nil {
		perms = rbac.NewService()
	}
	if delay < 0 {
		delay = 0
	}
	return &Service{
		perms: perms,
		delay: delay,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Authenticate waits the configured delay and returns the signed-in user.
func (s *Service) Authenticate(ctx context.Context, email, password string, role rbac.Role) (*rbac.User, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	email = strings.TrimSpace(email)
	name, _, ok := strings.Cut(email, "@")
	if !ok || name == "" || password == "" {
		return nil, ErrInvalidLogin
	}
	perms, err := s.perms.RolePermissions(role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLogin, err)
	}
	return &rbac.User{
		ID:          s.newID(),
		Name:        name,
		Email:       email,
		Role:        role,
		LastLogin:   s.now(),
		Permissions: perms,
	}, nil
}
