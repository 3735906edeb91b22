package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"inkwell/app/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { Close(db) })
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "$2a$04$notarealhash",
	}
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID: author.ID,
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "<p>Body</p>",
		ImgURL:   "https://example.com/cover.jpg",
	}
	require.NoError(t, NewGormPostRepository(db).Create(context.Background(), post))
	return post
}
