package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikolay/myblog/models"
	"github.com/mikolay/myblog/repositories"
	"github.com/mikolay/myblog/utils"
)

// CommentForm carries a visitor comment submission. The same shape is echoed
// back on validation failure so the client can redisplay the input.
type CommentForm struct {
	Name  string `form:"name" json:"name" binding:"required,max=80"`
	Email string `form:"email" json:"email" binding:"required,email"`
	Body  string `form:"body" json:"body" binding:"required"`
}

// CommentController handles comment submission. The endpoint is POST only;
// the router never exposes a view mode for it.
type CommentController struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(posts repositories.PostRepository, comments repositories.CommentRepository) *CommentController {
	return &CommentController{posts: posts, comments: comments}
}

// Create validates the submitted fields and stores a new active comment
// linked to the target post. The target must be a published post.
func (c *CommentController) Create(ctx *gin.Context) {
	post, ok := lookupPublishedPost(ctx, c.posts)
	if !ok {
		return
	}

	var form CommentForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.ValidationFailed(ctx, utils.FieldErrors(err), form)
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		Name:   strings.TrimSpace(form.Name),
		Email:  strings.TrimSpace(form.Email),
		Body:   utils.Sanitize(form.Body),
	}
	if err := c.comments.Create(&comment); err != nil {
		utils.Sugar.Errorf("create comment on post %d: %v", post.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to save comment")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "success", gin.H{
		"comment": comment,
		"post":    postBrief(post),
	})
}

// lookupPublishedPost resolves the :id route parameter to a published post,
// writing the 404 envelope itself when the predicate fails.
func lookupPublishedPost(ctx *gin.Context, posts repositories.PostRepository) (*models.Post, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, 40412, "post not found")
		return nil, false
	}

	post, lookupErr := posts.GetPublishedByID(uint(id))
	if lookupErr != nil {
		if errors.Is(lookupErr, repositories.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40412, "post not found")
			return nil, false
		}
		utils.Sugar.Errorf("get post %d: %v", id, lookupErr)
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to load post")
		return nil, false
	}
	return post, true
}
