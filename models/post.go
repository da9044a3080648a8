package models

import (
	"fmt"
	"time"
)

// PostStatus is the editorial state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "DF"
	StatusPublished PostStatus = "PB"
)

// Post is a blog entry written by an author. Drafts and future-dated posts
// are never visible to readers; the slug is only unique within its publish
// date, so the canonical address of a post is (year, month, day, slug).
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:250;not null" json:"title"`
	Slug        string     `gorm:"size:250;not null;index" json:"slug"`
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Status      PostStatus `gorm:"size:2;not null;default:'DF';index" json:"status"`
	PublishedAt time.Time  `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Author      User       `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Tags        []Tag      `gorm:"many2many:post_tags;" json:"tags"`
	Comments    []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// ArchivePath returns the canonical detail path of the post, derived from
// its publish date and slug.
func (p *Post) ArchivePath() string {
	return fmt.Sprintf("/archive/%d/%d/%d/%s",
		p.PublishedAt.Year(), int(p.PublishedAt.Month()), p.PublishedAt.Day(), p.Slug)
}
