package routes

import (
	"io/fs"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"inkwell/app/controllers"
	"inkwell/app/middleware"
)

// Dependencies is everything the router hands requests to
type Dependencies struct {
	Posts    *controllers.PostController
	Auth     *controllers.AuthController
	Pages    *controllers.PageController
	Sessions middleware.SessionResolver
	Static   fs.FS
	// GuardPostEdits restricts editing and deleting posts to admins.
	GuardPostEdits bool
}

// SetupRoutes defines the blog's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	chain := []mux.MiddlewareFunc{
		chimw.RequestID,
		chimw.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.SecureHeaders,
		middleware.LoadSession(deps.Sessions),
	}
	router.Use(chain...)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static)))).Methods("GET")

	router.HandleFunc("/", deps.Posts.Index).Methods("GET")
	router.HandleFunc("/about", deps.Pages.About).Methods("GET")
	router.HandleFunc("/contact", deps.Pages.Contact).Methods("GET")

	// Accounts
	router.HandleFunc("/register", deps.Auth.Register).Methods("GET", "POST")
	router.HandleFunc("/login", deps.Auth.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", deps.Auth.Logout).Methods("GET")

	// Posts
	router.Handle("/post/{id:[0-9]+}", middleware.RequireLogin(http.HandlerFunc(deps.Posts.Show))).Methods("GET", "POST")
	router.Handle("/new-post", middleware.AdminOnly(http.HandlerFunc(deps.Posts.New))).Methods("GET", "POST")

	editGuard := func(h http.Handler) http.Handler { return h }
	if deps.GuardPostEdits {
		editGuard = middleware.AdminOnly
	}
	router.Handle("/edit-post/{id:[0-9]+}", editGuard(http.HandlerFunc(deps.Posts.Edit))).Methods("GET", "POST")
	router.Handle("/delete/{id:[0-9]+}", editGuard(http.HandlerFunc(deps.Posts.Delete))).Methods("GET", "POST")

	// mux skips middleware for unmatched routes, so wrap the 404 page by hand.
	var notFound http.Handler = http.HandlerFunc(deps.Pages.NotFound)
	for i := len(chain) - 1; i >= 0; i-- {
		notFound = chain[i](notFound)
	}
	router.NotFoundHandler = notFound

	return router
}
