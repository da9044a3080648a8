package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mikolay/myblog/models"
)

// GormPostRepository implements PostRepository on a GORM connection.
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a PostRepository backed by db.
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// publishedPosts restricts a query to posts visible to readers. Reused by
// every read path so the visibility rule lives in exactly one place.
func publishedPosts(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.status = ? AND posts.published_at <= ?", models.StatusPublished, now)
	}
}

func (r *GormPostRepository) ListPublished(tagSlug string, page, pageSize int) ([]models.Post, Pagination, error) {
	now := time.Now()

	var tagID uint
	if tagSlug != "" {
		var tag models.Tag
		if err := r.db.Where("slug = ?", tagSlug).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, Pagination{}, fmt.Errorf("tag %q: %w", tagSlug, ErrNotFound)
			}
			return nil, Pagination{}, fmt.Errorf("look up tag %q: %w", tagSlug, err)
		}
		tagID = tag.ID
	}

	query := func() *gorm.DB {
		q := r.db.Model(&models.Post{}).Scopes(publishedPosts(now))
		if tagID != 0 {
			q = q.
				Joins("JOIN post_tags ON post_tags.post_id = posts.id").
				Where("post_tags.tag_id = ?", tagID)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("count posts: %w", err)
	}

	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	// Silent clamping: bad page numbers are a leniency case, never an error.
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var posts []models.Post
	err := query().
		Preload("Author").
		Preload("Tags").
		Order("posts.published_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list posts: %w", err)
	}

	return posts, Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

func (r *GormPostRepository) GetPublishedByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Scopes(publishedPosts(time.Now())).
		Preload("Author").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

func (r *GormPostRepository) GetPublishedBySlugAndDate(year, month, day int, slug string) (*models.Post, error) {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 1)

	var post models.Post
	err := r.db.
		Scopes(publishedPosts(time.Now())).
		Where("posts.slug = ? AND posts.published_at >= ? AND posts.published_at < ?", slug, start, end).
		Preload("Author").
		Preload("Tags").
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d/%d/%d/%s: %w", year, month, day, slug, ErrNotFound)
		}
		return nil, fmt.Errorf("get post %d/%d/%d/%s: %w", year, month, day, slug, err)
	}
	return &post, nil
}

func (r *GormPostRepository) SimilarPosts(post *models.Post, limit int) ([]models.Post, error) {
	if len(post.Tags) == 0 {
		return []models.Post{}, nil
	}

	tagIDs := make([]uint, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Scopes(publishedPosts(time.Now())).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id IN ?", tagIDs).
		Where("posts.id <> ?", post.ID).
		Group("posts.id").
		Order("COUNT(post_tags.tag_id) DESC, posts.published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("similar posts for %d: %w", post.ID, err)
	}
	return posts, nil
}

func (r *GormPostRepository) Recent(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Scopes(publishedPosts(time.Now())).
		Preload("Author").
		Preload("Tags").
		Order("posts.published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	return posts, nil
}

func (r *GormPostRepository) CountPublished() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).
		Scopes(publishedPosts(time.Now())).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return total, nil
}

func (r *GormPostRepository) MostCommented(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Model(&models.Post{}).
		Scopes(publishedPosts(time.Now())).
		Joins("LEFT JOIN comments ON comments.post_id = posts.id AND comments.active = ?", true).
		Group("posts.id").
		Order("COUNT(comments.id) DESC, posts.published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("most commented posts: %w", err)
	}
	return posts, nil
}
