package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikolay/myblog/config"
	"github.com/mikolay/myblog/models"
	"github.com/mikolay/myblog/repositories"
	"github.com/mikolay/myblog/utils"
)

// PostController serves the public post listing and detail endpoints.
type PostController struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	cfg      config.AppConfig
}

// NewPostController creates a new PostController instance.
func NewPostController(posts repositories.PostRepository, comments repositories.CommentRepository, cfg config.AppConfig) *PostController {
	return &PostController{posts: posts, comments: comments, cfg: cfg}
}

// List returns one page of published posts, optionally filtered by tag slug.
// A page parameter that is not an integer silently falls back to page 1;
// out-of-range pages clamp to the last page inside the repository.
func (p *PostController) List(ctx *gin.Context) {
	page := parsePage(ctx.Query("page"))
	tagSlug := strings.TrimSpace(ctx.Query("tag"))

	items, pagination, err := p.posts.ListPublished(tagSlug, page, p.cfg.PageSize)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "tag not found")
			return
		}
		utils.Sugar.Errorf("list posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to list posts")
		return
	}

	payload := gin.H{
		"items":      items,
		"pagination": pagination,
	}
	if tagSlug != "" {
		payload["tag"] = tagSlug
	}
	utils.Success(ctx, payload)
}

// Detail resolves a post by its canonical (year, month, day, slug) address
// and returns it together with its active comments, a blank comment form
// and the most similar published posts.
func (p *PostController) Detail(ctx *gin.Context) {
	year, errY := strconv.Atoi(ctx.Param("year"))
	month, errM := strconv.Atoi(ctx.Param("month"))
	day, errD := strconv.Atoi(ctx.Param("day"))
	if errY != nil || errM != nil || errD != nil {
		utils.Error(ctx, http.StatusNotFound, 40411, "post not found")
		return
	}

	post, err := p.posts.GetPublishedBySlugAndDate(year, month, day, ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40411, "post not found")
			return
		}
		utils.Sugar.Errorf("get post: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load post")
		return
	}

	comments, err := p.comments.ListActiveByPost(post.ID)
	if err != nil {
		utils.Sugar.Errorf("list comments for post %d: %v", post.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load comments")
		return
	}

	similar, err := p.posts.SimilarPosts(post, p.cfg.SimilarPosts)
	if err != nil {
		utils.Sugar.Errorf("similar posts for post %d: %v", post.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load similar posts")
		return
	}

	utils.Success(ctx, gin.H{
		"post":          post,
		"comments":      comments,
		"comment_form":  CommentForm{},
		"similar_posts": similar,
	})
}

// parsePage interprets the page query parameter leniently: anything that is
// not a positive integer means the first page.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func postBrief(post *models.Post) gin.H {
	return gin.H{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"published_at": post.PublishedAt,
	}
}
