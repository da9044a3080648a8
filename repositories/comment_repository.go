package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mikolay/myblog/models"
)

// GormCommentRepository implements CommentRepository on a GORM connection.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a CommentRepository backed by db.
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	// Moderation deactivates comments later; submissions always start
	// active.
	comment.Active = true
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *GormCommentRepository) ListActiveByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Where("post_id = ? AND active = ?", postID, true).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments for post %d: %w", postID, err)
	}
	return comments, nil
}
