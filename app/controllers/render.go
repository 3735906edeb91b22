package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

// Notice codes carried across redirects in the notice query parameter.
const (
	NoticeEmailTaken    = "email-taken"
	NoticeBadLogin      = "bad-login"
	NoticeLoginRequired = "login-required"
)

var notices = map[string]string{
	NoticeEmailTaken:    "You've already signed up with that email, log in instead!",
	NoticeBadLogin:      "Email or password is incorrect.",
	NoticeLoginRequired: "You need to log in or register to comment.",
}

// Page is the data every template receives
type Page struct {
	Title   string
	Visitor middleware.Visitor
	Notice  string
	Errors  []string
	Data    any
}

type errorPage struct {
	Status  int
	Message string
}

// Renderer executes the page templates inside the shared layout
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page in files against layout.html
func NewRenderer(files fs.FS) (*Renderer, error) {
	templates, err := loadTemplates(files)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// loadTemplates parses each page together with the layout
func loadTemplates(files fs.FS) (map[string]*template.Template, error) {
	policy := bluemonday.UGCPolicy()
	funcs := template.FuncMap{
		"sanitize": func(body string) template.HTML {
			return template.HTML(policy.Sanitize(body))
		},
	}

	names, err := fs.Glob(files, "*.html")
	if err != nil {
		return nil, err
	}

	templates := make(map[string]*template.Template)
	for _, file := range names {
		if file == "layout.html" {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, "layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		templates[name] = tmpl
	}
	if _, ok := templates["error"]; !ok {
		return nil, errors.New("missing error.html template")
	}
	return templates, nil
}

// Render writes a page with the given status. The page is rendered into a
// buffer first so a template failure never leaves half a page behind.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	tmpl, ok := rd.templates[name]
	if !ok {
		log.Printf("unknown template %q", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page.Visitor = middleware.VisitorFrom(r.Context())
	if page.Notice == "" {
		page.Notice = notices[r.URL.Query().Get("notice")]
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		log.Printf("template %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Error renders the error page
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.Render(w, r, status, "error", Page{
		Title: http.StatusText(status),
		Data:  errorPage{Status: status, Message: message},
	})
}

// NotFound renders the 404 page
func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.Error(w, r, http.StatusNotFound, "That page does not exist.")
}

// ServiceError maps a service failure onto a response
func (rd *Renderer) ServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		rd.NotFound(w, r)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	case errors.Is(err, services.ErrLoginRequired):
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		rd.Error(w, r, http.StatusInternalServerError, "Something went wrong.")
	}
}

// formErrors reports whether err is a form problem and, if so, its messages.
func formErrors(err error) ([]string, bool) {
	if !isValidationError(err) {
		return nil, false
	}
	return models.ValidationMessages(err), true
}
