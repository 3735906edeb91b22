package services

import (
	"context"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment appends a comment by a logged-in user to an existing post
func (s *CommentService) CreateComment(ctx context.Context, author *models.User, postID int, form models.CommentForm) (*models.Comment, error) {
	if author == nil {
		return nil, ErrLoginRequired
	}
	if err := models.ValidateForm(form); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		AuthorID: author.ID,
		Text:     form.Text,
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
