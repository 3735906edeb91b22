package controllers

import (
	"errors"
	"net/http"
	"time"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

type registerPage struct {
	Form models.RegisterForm
}

type loginPage struct {
	Form models.LoginForm
}

// AuthController handles registration, login and logout
type AuthController struct {
	authService  *services.AuthService
	view         *Renderer
	secureCookie bool
}

// NewAuthController creates a new AuthController. secureCookie marks the
// session cookie HTTPS-only.
func NewAuthController(authService *services.AuthService, view *Renderer, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		view:         view,
		secureCookie: secureCookie,
	}
}

// Register shows the sign-up form and creates accounts
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.view.Render(w, r, http.StatusOK, "register", Page{Title: "Register", Data: registerPage{}})
		return
	}

	form := registerFormFromRequest(r)
	res, err := ac.authService.Register(r.Context(), form)
	switch {
	case err == nil:
		ac.setSession(w, res)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, services.ErrDuplicateEmail):
		http.Redirect(w, r, "/login?notice="+NoticeEmailTaken, http.StatusSeeOther)
	default:
		msgs, invalid := formErrors(err)
		if !invalid {
			ac.view.ServiceError(w, r, err)
			return
		}
		form.Password = ""
		ac.view.Render(w, r, http.StatusUnprocessableEntity, "register", Page{
			Title:  "Register",
			Errors: msgs,
			Data:   registerPage{Form: form},
		})
	}
}

// Login shows the login form and opens sessions
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.view.Render(w, r, http.StatusOK, "login", Page{Title: "Log In", Data: loginPage{}})
		return
	}

	form := loginFormFromRequest(r)
	res, err := ac.authService.Login(r.Context(), form)
	form.Password = ""
	switch {
	case err == nil:
		ac.setSession(w, res)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, services.ErrUnknownEmail), errors.Is(err, services.ErrInvalidPassword):
		ac.view.Render(w, r, http.StatusUnauthorized, "login", Page{
			Title:  "Log In",
			Notice: notices[NoticeBadLogin],
			Data:   loginPage{Form: form},
		})
	default:
		msgs, invalid := formErrors(err)
		if !invalid {
			ac.view.ServiceError(w, r, err)
			return
		}
		ac.view.Render(w, r, http.StatusUnprocessableEntity, "login", Page{
			Title:  "Log In",
			Errors: msgs,
			Data:   loginPage{Form: form},
		})
	}
}

// Logout ends the session and clears the cookie
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		ac.authService.Logout(r.Context(), cookie.Value)
	}
	http.SetCookie(w, ac.cookie("", time.Unix(0, 0), -1))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) setSession(w http.ResponseWriter, res *services.LoginResult) {
	maxAge := int(time.Until(res.ExpiresAt).Seconds())
	http.SetCookie(w, ac.cookie(res.Token, res.ExpiresAt, maxAge))
}

func (ac *AuthController) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ac.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
