package repositories

import (
	"context"

	"gorm.io/gorm"

	"inkwell/app/models"
)

// GormUserRepository implements UserRepository using gorm
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user. A taken email yields ErrDuplicate.
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID retrieves a user by ID
func (r *GormUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by normalized email
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Count returns the number of registered users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// ClaimFirstAdmin makes the user an admin if and only if it holds the lowest
// id. The check and the update are one statement, so of several accounts
// created at once exactly one wins.
func (r *GormUserRepository) ClaimFirstAdmin(ctx context.Context, id int) (bool, error) {
	first := r.db.WithContext(ctx).Model(&models.User{}).Select("MIN(id)")
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND id = (?)", id, first).
		Update("role", models.RoleAdmin)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

// UpdateRole changes the role of an existing user
func (r *GormUserRepository) UpdateRole(ctx context.Context, id int, role models.Role) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
