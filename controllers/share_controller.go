package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikolay/myblog/config"
	"github.com/mikolay/myblog/models"
	"github.com/mikolay/myblog/repositories"
	"github.com/mikolay/myblog/utils"
)

// ShareForm carries a share-by-email submission.
type ShareForm struct {
	Name     string `form:"name" json:"name" binding:"required,max=25"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	To       string `form:"to" json:"to" binding:"required,email"`
	Comments string `form:"comments" json:"comments" binding:"max=2000"`
}

// ShareController lets visitors recommend a post by email. Nothing is
// persisted; the only side effect of a valid submission is one dispatched
// message.
type ShareController struct {
	posts  repositories.PostRepository
	mailer utils.Mailer
	cfg    config.AppConfig
}

// NewShareController creates a new ShareController instance.
func NewShareController(posts repositories.PostRepository, mailer utils.Mailer, cfg config.AppConfig) *ShareController {
	return &ShareController{posts: posts, mailer: mailer, cfg: cfg}
}

// Form returns the blank share form state for a published post.
func (s *ShareController) Form(ctx *gin.Context) {
	post, ok := lookupPublishedPost(ctx, s.posts)
	if !ok {
		return
	}
	utils.Success(ctx, gin.H{
		"post": postBrief(post),
		"form": ShareForm{},
		"sent": false,
	})
}

// Send validates the submission and dispatches the recommendation email.
// Delivery failure is surfaced to the caller as a 502 rather than letting
// the SMTP error escape as a generic fault.
func (s *ShareController) Send(ctx *gin.Context) {
	post, ok := lookupPublishedPost(ctx, s.posts)
	if !ok {
		return
	}

	var form ShareForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.ValidationFailed(ctx, utils.FieldErrors(err), form)
		return
	}

	postURL := s.absoluteURL(post)
	subject := fmt.Sprintf("%s recommends you read %s", form.Name, post.Title)
	body := fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, form.Name, form.Comments)

	if err := s.mailer.Send(form.To, subject, body); err != nil {
		utils.Sugar.Errorf("share post %d to %s: %v", post.ID, form.To, err)
		utils.Respond(ctx, http.StatusBadGateway, 50230, "failed to send share email", gin.H{"sent": false})
		return
	}

	utils.Success(ctx, gin.H{
		"post": postBrief(post),
		"sent": true,
	})
}

// absoluteURL builds the fully qualified canonical URL of a post's detail
// page for use outside the request context (email bodies, feeds).
func (s *ShareController) absoluteURL(post *models.Post) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + post.ArchivePath()
}
