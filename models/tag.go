package models

// Tag labels posts for filtered listings and similarity ranking. Tags are
// created and curated by the editorial side; this service only reads them.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;not null" json:"name"`
	Slug  string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Posts []Post `gorm:"many2many:post_tags;" json:"-"`
}
