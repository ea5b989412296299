package rbac

import (
	"context"
	"fmt"

	"github.com/buildtrack/buildtrack/internal/shared"
)

const sessionUserKey = "user"

type userContextKey struct{}

// StoreUser attaches the user to the session.
func StoreUser(sess *shared.Session, user *User) error {
	if sess == nil || user == nil {
		return nil
	}
	sess.SetUser(user.ID)
	return sess.SetJSON(sessionUserKey, user)
}

// LoadUser reads the user attached to the session. A session without a user
// yields (nil, nil).
func LoadUser(sess *shared.Session) (*User, error) {
	if sess == nil || sess.User() == "" {
		return nil, nil
	}
	var user User
	ok, err := sess.GetJSON(sessionUserKey, &user)
	if err != nil {
		return nil, fmt.Errorf("rbac: decode session user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, user.Role)
	}
	return &user, nil
}

// ForgetUser detaches the user from the session.
func ForgetUser(sess *shared.Session) {
	if sess == nil {
		return
	}
	sess.SetUser("")
	sess.Delete(sessionUserKey)
}

// ContextWithUser stores the user in context.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the user from context.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}
