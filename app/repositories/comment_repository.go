package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/app/models"
)

// GormCommentRepository implements CommentRepository using gorm
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

// ListByPost retrieves all comments for a post, oldest first
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteByPost deletes every comment under a post
func (r *GormCommentRepository) DeleteByPost(ctx context.Context, postID int) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Comment{}).Error
}
