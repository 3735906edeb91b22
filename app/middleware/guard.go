package middleware

import "net/http"

// LoginPath is where anonymous visitors are sent by RequireLogin
const LoginPath = "/login?notice=login-required"

// RequireLogin redirects anonymous visitors to the login page
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !VisitorFrom(r.Context()).LoggedIn() {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly rejects every visitor without the admin role with 403
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !VisitorFrom(r.Context()).IsAdmin() {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
