package models

import "time"

// Comment is a visitor reply to a post. Comments are created active and may
// be deactivated later by moderation; inactive comments are never listed.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
