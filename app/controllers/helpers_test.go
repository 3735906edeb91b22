package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/repositories/mock"
	"inkwell/app/services"
	"inkwell/app/views"
)

type testApp struct {
	users    *mock.UserRepository
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	auth     *services.AuthService
	postSvc  *services.PostService
	post     *PostController
	authCtl  *AuthController
	pages    *PageController
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	view, err := NewRenderer(views.Pages())
	require.NoError(t, err)

	signer, err := services.NewTokenSigner([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	app := &testApp{
		users:    mock.NewUserRepository(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
	}
	app.auth = services.NewAuthService(app.users, mock.NewSessionRepository(), signer, services.AuthConfig{BcryptCost: bcrypt.MinCost})
	app.postSvc = services.NewPostService(app.posts, app.comments, services.NewUserService(app.users))
	app.post = NewPostController(app.postSvc, services.NewCommentService(app.comments, app.posts), view)
	app.authCtl = NewAuthController(app.auth, view, false)
	app.pages = NewPageController(view)
	return app
}

func (a *testApp) register(t *testing.T, name string) *models.User {
	t.Helper()
	res, err := a.auth.Register(context.Background(), models.RegisterForm{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	return res.User
}

func (a *testApp) publish(t *testing.T, author *models.User, title string) *models.Post {
	t.Helper()
	post, err := a.postSvc.CreatePost(context.Background(), author, models.PostForm{
		Title:    title,
		Subtitle: "A subtitle",
		ImgURL:   "https://example.com/cover.jpg",
		Body:     "<p>Body of " + title + "</p>",
	})
	require.NoError(t, err)
	return post
}

// newRequest builds a request as the router would hand it over: form
// encoded, with path variables and the visitor already resolved.
func newRequest(method, target string, form url.Values, vars map[string]string, user *models.User) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req.WithContext(middleware.WithVisitor(req.Context(), middleware.Visitor{User: user}))
}
