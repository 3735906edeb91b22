package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dgraph-io/badger/v4"
	"gorm.io/gorm"

	"inkwell/app/controllers"
	"inkwell/app/repositories"
	"inkwell/app/routes"
	"inkwell/app/services"
	"inkwell/app/views"
	"inkwell/config"
)

// App is the fully wired blog
type App struct {
	Config   config.Config
	DB       *gorm.DB
	Sessions *badger.DB
	Handler  http.Handler
}

// NewApp opens both stores and wires repositories, services, controllers
// and routes together.
func NewApp(cfg config.Config) (*App, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	store, err := openSessions(cfg)
	if err != nil {
		repositories.Close(db)
		return nil, err
	}

	app := &App{Config: cfg, DB: db, Sessions: store}
	if err := app.wire(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) wire() error {
	users := repositories.NewGormUserRepository(a.DB)
	posts := repositories.NewGormPostRepository(a.DB)
	comments := repositories.NewGormCommentRepository(a.DB)
	sessions := repositories.NewBadgerSessionRepository(a.Sessions)

	signer, err := services.NewTokenSigner([]byte(a.Config.SessionSecret))
	if err != nil {
		return err
	}
	auth := services.NewAuthService(users, sessions, signer, services.AuthConfig{
		SessionLifetime: a.Config.SessionLifetime,
		BcryptCost:      a.Config.BcryptCost,
	})

	view, err := controllers.NewRenderer(views.Pages())
	if err != nil {
		return err
	}

	a.Handler = routes.SetupRoutes(routes.Dependencies{
		Posts: controllers.NewPostController(
			services.NewPostService(posts, comments, services.NewUserService(users)),
			services.NewCommentService(comments, posts),
			view,
		),
		Auth:           controllers.NewAuthController(auth, view, a.Config.CookieSecure),
		Pages:          controllers.NewPageController(view),
		Sessions:       auth,
		Static:         views.Static(),
		GuardPostEdits: a.Config.GuardPostEdits,
	})
	return nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting inkwell on %s", a.Config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases both stores
func (a *App) Close() error {
	return errors.Join(a.Sessions.Close(), repositories.Close(a.DB))
}
