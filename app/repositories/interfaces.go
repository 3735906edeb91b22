package repositories

import (
	"context"

	"inkwell/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	ClaimFirstAdmin(ctx context.Context, id int) (bool, error)
	UpdateRole(ctx context.Context, id int, role models.Role) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int) ([]*models.Comment, error)
	DeleteByPost(ctx context.Context, postID int) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Create(session *models.Session) error
	Get(id string) (*models.Session, error)
	Delete(id string) error
}
