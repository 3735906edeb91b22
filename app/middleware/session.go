package middleware

import (
	"context"
	"log"
	"net/http"

	"inkwell/app/models"
)

// SessionCookieName is the cookie holding the signed session token
const SessionCookieName = "inkwell_session"

// SessionResolver maps a session token onto its user
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, string, error)
}

// LoadSession resolves the session cookie, if any, and stores the visitor
// in the request context. Invalid sessions are treated as anonymous.
func LoadSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var visitor Visitor
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				user, sid, err := resolver.Resolve(r.Context(), cookie.Value)
				if err != nil {
					log.Printf("ignoring session cookie: %v", err)
				} else {
					visitor = Visitor{User: user, SessionID: sid}
				}
			}
			next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), visitor)))
		})
	}
}
