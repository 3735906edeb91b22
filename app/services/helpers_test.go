package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inkwell/app/models"
	"inkwell/app/repositories/mock"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	users    *mock.UserRepository
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	sessions *mock.SessionRepository
	signer   *TokenSigner
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	signer, err := NewTokenSigner([]byte(testSecret))
	require.NoError(t, err)

	env := &testEnv{
		users:    mock.NewUserRepository(),
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
		sessions: mock.NewSessionRepository(),
		signer:   signer,
	}
	env.auth = NewAuthService(env.users, env.sessions, signer, AuthConfig{BcryptCost: bcrypt.MinCost})
	return env
}

func (e *testEnv) register(t *testing.T, name string) *models.User {
	t.Helper()
	res, err := e.auth.Register(context.Background(), models.RegisterForm{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	return res.User
}

func validPostForm(title string) models.PostForm {
	return models.PostForm{
		Title:    title,
		Subtitle: "A subtitle",
		ImgURL:   "https://example.com/cover.jpg",
		Body:     "<p>Hello</p>",
	}
}
