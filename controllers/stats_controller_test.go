package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikolay/myblog/models"
)

func TestSidebarStats(t *testing.T) {
	posts := &mockPostRepo{}
	for i := 1; i <= 7; i++ {
		posts.posts = append(posts.posts, publishedPost(uint(i), "Post", "post",
			time.Now().Add(-time.Duration(i)*time.Hour)))
	}
	draft := publishedPost(8, "Draft", "draft", time.Now().Add(-time.Hour))
	draft.Status = models.StatusDraft
	posts.posts = append(posts.posts, draft)

	controller := NewStatsController(posts)
	r := gin.New()
	r.GET("/api/v1/stats", controller.Sidebar)

	w := performGet(r, "/api/v1/stats")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var data struct {
		TotalPosts    int64         `json:"total_posts"`
		LatestPosts   []models.Post `json:"latest_posts"`
		MostCommented []models.Post `json:"most_commented"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(7), data.TotalPosts)
	assert.Len(t, data.LatestPosts, 5)
	assert.Len(t, data.MostCommented, 5)
}
