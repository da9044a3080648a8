package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"

	"github.com/mikolay/myblog/config"
	"github.com/mikolay/myblog/repositories"
	"github.com/mikolay/myblog/utils"
)

// Item descriptions are cut after this many words, keeping the markup
// well formed.
const feedDescriptionWords = 30

// FeedController produces the RSS syndication feed of recent posts.
type FeedController struct {
	posts repositories.PostRepository
	cfg   config.AppConfig
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(posts repositories.PostRepository, cfg config.AppConfig) *FeedController {
	return &FeedController{posts: posts, cfg: cfg}
}

// RSS returns the most recently published posts as an RSS 2.0 document.
// Each item carries the post title, its canonical absolute link and a
// rendered, truncated description.
func (f *FeedController) RSS(ctx *gin.Context) {
	posts, err := f.posts.Recent(f.cfg.FeedSize)
	if err != nil {
		utils.Sugar.Errorf("feed posts: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to build feed")
		return
	}

	base := strings.TrimRight(f.cfg.BaseURL, "/")
	feed := &feeds.Feed{
		Title:       f.cfg.SiteName,
		Link:        &feeds.Link{Href: base + "/api/v1/posts"},
		Description: f.cfg.SiteDescription,
		Updated:     time.Now(),
	}

	for i := range posts {
		post := &posts[i]
		rendered, err := utils.RenderMarkdown(post.Body)
		if err != nil {
			utils.Sugar.Errorf("render post %d body: %v", post.ID, err)
			continue
		}
		description := utils.TruncateHTMLWords(utils.Sanitize(rendered), feedDescriptionWords)

		link := base + post.ArchivePath()
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          link,
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: description,
			Author:      &feeds.Author{Name: post.Author.Username},
			Created:     post.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		utils.Sugar.Errorf("serialize feed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to build feed")
		return
	}
	ctx.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
