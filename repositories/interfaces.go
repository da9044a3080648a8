package repositories

import (
	"errors"

	"github.com/mikolay/myblog/models"
)

// ErrNotFound is returned when a requested entity does not exist or is not
// visible to readers (draft, future-dated, unknown tag).
var ErrNotFound = errors.New("not found")

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// PostRepository exposes the reader-facing view of posts. Every method only
// ever returns published posts whose publish timestamp is not in the future.
type PostRepository interface {
	// ListPublished returns one page of published posts, newest first.
	// An empty tagSlug means no tag filter; an unknown tagSlug is
	// ErrNotFound. Out-of-range page numbers are clamped silently: below 1
	// to the first page, beyond the end to the last page. Note the
	// asymmetry is deliberate: a reader paging backwards past the start
	// lands on page 1, not on the last page.
	ListPublished(tagSlug string, page, pageSize int) ([]models.Post, Pagination, error)

	// GetPublishedByID looks up a published post by primary key.
	GetPublishedByID(id uint) (*models.Post, error)

	// GetPublishedBySlugAndDate resolves a post by its canonical address.
	// Slugs are only unique per publish date, hence the composite key.
	GetPublishedBySlugAndDate(year, month, day int, slug string) (*models.Post, error)

	// SimilarPosts returns up to limit published posts sharing at least one
	// tag with post, excluding post itself, ordered by shared-tag count
	// descending then publish date descending.
	SimilarPosts(post *models.Post, limit int) ([]models.Post, error)

	// Recent returns the limit most recently published posts.
	Recent(limit int) ([]models.Post, error)

	// CountPublished returns the number of posts visible to readers.
	CountPublished() (int64, error)

	// MostCommented returns up to limit published posts ordered by their
	// active comment count descending, then publish date descending.
	MostCommented(limit int) ([]models.Post, error)
}

// CommentRepository persists and lists visitor comments.
type CommentRepository interface {
	// Create stores a new comment. Comments are always created active;
	// moderation happens elsewhere.
	Create(comment *models.Comment) error

	// ListActiveByPost returns the active comments of a post in
	// chronological thread order.
	ListActiveByPost(postID uint) ([]models.Comment, error)
}
