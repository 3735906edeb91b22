package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSqliteDSN(t *testing.T) {
	t.Run("plain path", func(t *testing.T) {
		assert.Equal(t,
			"blog.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000",
			sqliteDSN("blog.db"))
	})

	t.Run("caller settings win", func(t *testing.T) {
		assert.Equal(t,
			"blog.db?_busy_timeout=100&_foreign_keys=on&_journal_mode=WAL",
			sqliteDSN("blog.db?_busy_timeout=100"))
	})
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, isPostgres("postgres://u:p@localhost/blog"))
	assert.True(t, isPostgres("postgresql://localhost/blog"))
	assert.False(t, isPostgres("data/blog.db"))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)), ErrDuplicate)

	other := errors.New("disk full")
	assert.Equal(t, other, translate(other))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, Migrate(db))

	for _, table := range []string{"users", "blog_posts", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
