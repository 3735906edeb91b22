package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inkwell/app/models"
)

// GormPostRepository implements PostRepository using gorm
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error)
}

// GetByID retrieves a post by ID
func (r *GormPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// List retrieves every post in storage order
func (r *GormPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).Order("id asc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update overwrites the editable columns of an existing post
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":     post.Title,
			"subtitle":  post.Subtitle,
			"img_url":   post.ImgURL,
			"body":      post.Body,
			"author_id": post.AuthorID,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a post by ID
func (r *GormPostRepository) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
