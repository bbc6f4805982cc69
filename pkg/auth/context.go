package auth

import (
	"context"
	"errors"
)

type contextKey string

const userContextKey contextKey = "trustnet.user"

// ErrNoUserInContext is returned when no authenticated user is attached to the context.
var ErrNoUserInContext = errors.New("no user in context")

// UserContext carries the authenticated caller through request handling
type UserContext struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (u *UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetUserInContext attaches the user context to a request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context set by the auth middleware
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
