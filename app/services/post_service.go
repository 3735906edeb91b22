package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostSummary is a post as shown on the index page.
type PostSummary struct {
	Post       *models.Post
	AuthorName string
}

// CommentDetail is a comment with its author resolved.
type CommentDetail struct {
	Comment     *models.Comment
	AuthorName  string
	AuthorEmail string
}

// PostDetail is a post page: the post, its author and its comments.
type PostDetail struct {
	Post       *models.Post
	AuthorName string
	Comments   []CommentDetail
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	users       *UserService
	now         func() time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, users *UserService) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		users:       users,
		now:         time.Now,
	}
}

// CreatePost publishes a post by an admin, dated today
func (s *PostService) CreatePost(ctx context.Context, author *models.User, form models.PostForm) (*models.Post, error) {
	if !author.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := models.ValidateForm(form); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: author.ID,
		Date:     s.now().Format(models.DateLayout),
	}
	post.ApplyForm(form)

	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post with its author and comments
func (s *PostService) GetPost(ctx context.Context, id int) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	authors := newAuthorCache(s.users)
	authorName, err := authors.name(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author of post %d: %w", id, err)
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	detail := &PostDetail{
		Post:       post,
		AuthorName: authorName,
		Comments:   make([]CommentDetail, 0, len(comments)),
	}
	for _, comment := range comments {
		name, err := authors.name(ctx, comment.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author of comment %d: %w", comment.ID, err)
		}
		email, err := authors.email(ctx, comment.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author of comment %d: %w", comment.ID, err)
		}
		detail.Comments = append(detail.Comments, CommentDetail{
			Comment:     comment,
			AuthorName:  name,
			AuthorEmail: email,
		})
	}
	post.Comments = comments

	return detail, nil
}

// ListPosts retrieves every post in storage order with its author's name
func (s *PostService) ListPosts(ctx context.Context) ([]PostSummary, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	authors := newAuthorCache(s.users)
	summaries := make([]PostSummary, 0, len(posts))
	for _, post := range posts {
		name, err := authors.name(ctx, post.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve author of post %d: %w", post.ID, err)
		}
		summaries = append(summaries, PostSummary{Post: post, AuthorName: name})
	}

	return summaries, nil
}

// UpdatePost overwrites the editable fields of a post. A logged-in editor
// becomes the post's author.
func (s *PostService) UpdatePost(ctx context.Context, id int, editor *models.User, form models.PostForm) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateForm(form); err != nil {
		return nil, err
	}

	post.ApplyForm(form)
	if editor != nil {
		post.AuthorID = editor.ID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateTitle
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update post %d: %w", id, err)
	}
	return post, nil
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByPost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comments of post %d: %w", id, err)
	}

	return s.postRepo.Delete(ctx, id)
}

// authorCache memoizes author lookups for the duration of one call.
type authorCache struct {
	users  *UserService
	names  map[int]string
	emails map[int]string
}

func newAuthorCache(users *UserService) *authorCache {
	return &authorCache{
		users:  users,
		names:  make(map[int]string),
		emails: make(map[int]string),
	}
}

func (c *authorCache) name(ctx context.Context, id int) (string, error) {
	if name, ok := c.names[id]; ok {
		return name, nil
	}
	name, err := c.users.AuthorName(ctx, id)
	if err != nil {
		return "", err
	}
	c.names[id] = name
	return name, nil
}

func (c *authorCache) email(ctx context.Context, id int) (string, error) {
	if email, ok := c.emails[id]; ok {
		return email, nil
	}
	email, err := c.users.AuthorEmail(ctx, id)
	if err != nil {
		return "", err
	}
	c.emails[id] = email
	return email, nil
}
