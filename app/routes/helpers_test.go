package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkwell/app/controllers"
	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/views"
)

type testServer struct {
	*httptest.Server
	db *gorm.DB
}

func newTestServer(t *testing.T, guardPostEdits bool) *testServer {
	t.Helper()

	db, err := repositories.Open(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	t.Cleanup(func() { repositories.Close(db) })

	store, err := repositories.OpenSessionStore("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	users := repositories.NewGormUserRepository(db)
	posts := repositories.NewGormPostRepository(db)
	comments := repositories.NewGormCommentRepository(db)

	signer, err := services.NewTokenSigner([]byte("an-e2e-test-secret-of-enough-len"))
	require.NoError(t, err)
	auth := services.NewAuthService(users, repositories.NewBadgerSessionRepository(store), signer,
		services.AuthConfig{BcryptCost: bcrypt.MinCost})

	view, err := controllers.NewRenderer(views.Pages())
	require.NoError(t, err)

	router := SetupRoutes(Dependencies{
		Posts: controllers.NewPostController(
			services.NewPostService(posts, comments, services.NewUserService(users)),
			services.NewCommentService(comments, posts),
			view,
		),
		Auth:           controllers.NewAuthController(auth, view, false),
		Pages:          controllers.NewPageController(view),
		Sessions:       auth,
		Static:         views.Static(),
		GuardPostEdits: guardPostEdits,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db}
}

// client is a browser with its own cookie jar that does not follow redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (s *testServer) newClient(t *testing.T) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:    t,
		base: s.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *client) get(path string) (int, string, string) {
	c.t.Helper()
	resp, err := c.http.Get(c.base + path)
	require.NoError(c.t, err)
	return read(c.t, resp)
}

func (c *client) post(path string, form url.Values) (int, string, string) {
	c.t.Helper()
	resp, err := c.http.Post(c.base+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	return read(c.t, resp)
}

// read returns status, Location header and body.
func read(t *testing.T, resp *http.Response) (int, string, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (c *client) register(name, email string) {
	c.t.Helper()
	status, loc, _ := c.post("/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {"hunter2"},
	})
	require.Equal(c.t, http.StatusSeeOther, status)
	require.Equal(c.t, "/", loc)
}

func postForm(title string) url.Values {
	return url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"img_url":  {"https://example.com/cover.jpg"},
		"body":     {"<p>Body of " + title + "</p>"},
	}
}

func (s *testServer) countComments(t *testing.T, postID int) int {
	t.Helper()
	comments, err := repositories.NewGormCommentRepository(s.db).ListByPost(context.Background(), postID)
	require.NoError(t, err)
	return len(comments)
}

func (s *testServer) user(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := repositories.NewGormUserRepository(s.db).GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return user
}
