package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mikolay/myblog/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Post{}, &models.Comment{}))
	return db
}

func seedAuthor(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	author := models.User{Username: "admin"}
	require.NoError(t, db.Create(&author).Error)
	return author
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) models.Tag {
	t.Helper()
	tag := models.Tag{Name: name, Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return tag
}

func seedPost(t *testing.T, db *gorm.DB, author models.User, title, slug string, status models.PostStatus, publishedAt time.Time, tags ...models.Tag) models.Post {
	t.Helper()
	post := models.Post{
		Title:       title,
		Slug:        slug,
		AuthorID:    author.ID,
		Body:        "Body of " + title,
		Status:      status,
		PublishedAt: publishedAt,
		Tags:        tags,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func daysAgo(n int) time.Time {
	return time.Now().Add(-time.Duration(n) * 24 * time.Hour)
}
