package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/app/models"
	"inkwell/app/repositories/mock"
)

type countingUsers struct {
	*mock.UserRepository
	lookups int
}

func (c *countingUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	c.lookups++
	return c.UserRepository.GetByID(ctx, id)
}

func TestAuthorCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, "ada")
	users := &countingUsers{UserRepository: env.users}
	cache := newAuthorCache(NewUserService(users))

	for i := 0; i < 3; i++ {
		name, err := cache.name(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada", name)
	}
	email, err := cache.email(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
	assert.Equal(t, 2, users.lookups)

	_, err = cache.name(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := NewPostService(env.posts, env.comments, NewUserService(env.users))
	service.now = func() time.Time { return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC) }
	admin := env.register(t, "ada")
	member := env.register(t, "grace")

	t.Run("create post", func(t *testing.T) {
		post, err := service.CreatePost(ctx, admin, validPostForm("Hello"))
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, admin.ID, post.AuthorID)
		assert.Equal(t, "March 05, 2024", post.Date)
	})

	t.Run("members cannot create", func(t *testing.T) {
		_, err := service.CreatePost(ctx, member, validPostForm("Sneaky"))
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = service.CreatePost(ctx, nil, validPostForm("Sneaky"))
		assert.ErrorIs(t, err, ErrForbidden)

		posts, err := env.posts.List(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
	})

	t.Run("invalid form", func(t *testing.T) {
		form := validPostForm("Broken")
		form.ImgURL = "not a url"
		_, err := service.CreatePost(ctx, admin, form)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("duplicate title", func(t *testing.T) {
		_, err := service.CreatePost(ctx, admin, validPostForm("Hello"))
		assert.ErrorIs(t, err, ErrDuplicateTitle)
	})

	t.Run("get post", func(t *testing.T) {
		comments := NewCommentService(env.comments, env.posts)
		_, err := comments.CreateComment(ctx, member, 1, models.CommentForm{Text: "nice"})
		require.NoError(t, err)

		detail, err := service.GetPost(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Hello", detail.Post.Title)
		assert.Equal(t, "ada", detail.AuthorName)
		require.Len(t, detail.Comments, 1)
		assert.Equal(t, "nice", detail.Comments[0].Comment.Text)
		assert.Equal(t, "grace", detail.Comments[0].AuthorName)
		assert.Equal(t, "grace@example.com", detail.Comments[0].AuthorEmail)

		_, err = service.GetPost(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update post", func(t *testing.T) {
		form := validPostForm("Hello, again")
		form.Body = "<p>Updated</p>"
		post, err := service.UpdatePost(ctx, 1, member, form)
		require.NoError(t, err)
		assert.Equal(t, member.ID, post.AuthorID)
		assert.Equal(t, "March 05, 2024", post.Date)

		stored, err := env.posts.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Hello, again", stored.Title)
		assert.Equal(t, "<p>Updated</p>", stored.Body)
	})

	t.Run("anonymous edit keeps the author", func(t *testing.T) {
		post, err := service.UpdatePost(ctx, 1, nil, validPostForm("Hello, anonymously"))
		require.NoError(t, err)
		assert.Equal(t, member.ID, post.AuthorID)
	})

	t.Run("update missing post", func(t *testing.T) {
		_, err := service.UpdatePost(ctx, 99, admin, validPostForm("Ghost"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list posts", func(t *testing.T) {
		_, err := service.CreatePost(ctx, admin, validPostForm("Second"))
		require.NoError(t, err)

		posts, err := service.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Hello, anonymously", posts[0].Post.Title)
		assert.Equal(t, "grace", posts[0].AuthorName)
		assert.Equal(t, "Second", posts[1].Post.Title)
		assert.Equal(t, "ada", posts[1].AuthorName)
	})

	t.Run("delete post", func(t *testing.T) {
		require.Equal(t, 1, env.comments.Len())

		require.NoError(t, service.DeletePost(ctx, 1))

		_, err := service.GetPost(ctx, 1)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, env.comments.Len())

		assert.ErrorIs(t, service.DeletePost(ctx, 1), ErrNotFound)
	})
}
