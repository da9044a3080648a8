package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikolay/myblog/repositories"
	"github.com/mikolay/myblog/utils"
)

// Window for the latest and most-commented sidebar lists.
const sidebarWindow = 5

// StatsController serves the sidebar numbers: how many posts are published,
// which are newest and which draw the most discussion.
type StatsController struct {
	posts repositories.PostRepository
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(posts repositories.PostRepository) *StatsController {
	return &StatsController{posts: posts}
}

// Sidebar returns aggregate reader-facing stats over published posts only.
func (s *StatsController) Sidebar(ctx *gin.Context) {
	total, err := s.posts.CountPublished()
	if err != nil {
		utils.Sugar.Errorf("count posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load stats")
		return
	}

	latest, err := s.posts.Recent(sidebarWindow)
	if err != nil {
		utils.Sugar.Errorf("latest posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load stats")
		return
	}

	mostCommented, err := s.posts.MostCommented(sidebarWindow)
	if err != nil {
		utils.Sugar.Errorf("most commented posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load stats")
		return
	}

	utils.Success(ctx, gin.H{
		"total_posts":    total,
		"latest_posts":   latest,
		"most_commented": mostCommented,
	})
}
