package middleware

import (
	"context"

	"inkwell/app/models"
)

type contextKey int

const visitorKey contextKey = iota

// Visitor is whoever is making the current request. User is nil for
// anonymous visitors.
type Visitor struct {
	User      *models.User
	SessionID string
}

// LoggedIn reports whether the request carries a valid session
func (v Visitor) LoggedIn() bool {
	return v.User != nil
}

// IsAdmin reports whether the visitor holds the admin role
func (v Visitor) IsAdmin() bool {
	return v.User.IsAdmin()
}

// WithVisitor attaches a visitor to a request context
func WithVisitor(ctx context.Context, v Visitor) context.Context {
	return context.WithValue(ctx, visitorKey, v)
}

// VisitorFrom returns the visitor of a request, anonymous if none was set
func VisitorFrom(ctx context.Context) Visitor {
	v, _ := ctx.Value(visitorKey).(Visitor)
	return v
}
