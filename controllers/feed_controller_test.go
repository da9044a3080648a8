package controllers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type rssDoc struct {
	XMLName xml.Name  `xml:"rss"`
	Title   string    `xml:"channel>title"`
	Items   []rssItem `xml:"channel>item"`
}

func newFeedRouter(posts *mockPostRepo) *gin.Engine {
	controller := NewFeedController(posts, testConfig())
	r := gin.New()
	r.GET("/feed", controller.RSS)
	return r
}

func TestRSSFeed(t *testing.T) {
	longBody := strings.Repeat("word ", 45) + "end"
	posts := &mockPostRepo{}
	for i := 1; i <= 7; i++ {
		p := publishedPost(uint(i), fmt.Sprintf("Post %d", i), fmt.Sprintf("post-%d", i),
			time.Now().Add(-time.Duration(i)*24*time.Hour))
		p.Body = longBody
		posts.posts = append(posts.posts, p)
	}

	w := performGet(newFeedRouter(posts), "/feed")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")

	var doc rssDoc
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))

	assert.Equal(t, "My blog", doc.Title)
	// Fixed window: only the 5 most recent of the 7 published posts.
	require.Len(t, doc.Items, 5)
	assert.Equal(t, "Post 1", doc.Items[0].Title)
	assert.Equal(t, "Post 5", doc.Items[4].Title)

	for _, item := range doc.Items {
		assert.Contains(t, item.Link, "http://testserver/archive/")
		assert.NotEmpty(t, item.PubDate)

		// Descriptions are cut at 30 words with the markup kept well
		// formed: the cut body still ends inside a closed paragraph.
		assert.Contains(t, item.Description, "…")
		assert.True(t, strings.HasSuffix(strings.TrimSpace(item.Description), "</p>"),
			"description should close its open tags, got %q", item.Description)
		assert.LessOrEqual(t, len(strings.Fields(stripTags(item.Description))), 31)
	}
}

func TestRSSFeedShortBody(t *testing.T) {
	posts := &mockPostRepo{}
	p := publishedPost(1, "Short", "short", time.Now().Add(-time.Hour))
	p.Body = "Just a few words here."
	posts.posts = append(posts.posts, p)

	w := performGet(newFeedRouter(posts), "/feed")
	require.Equal(t, http.StatusOK, w.Code)

	var doc rssDoc
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Items, 1)
	assert.NotContains(t, doc.Items[0].Description, "…")
	assert.Contains(t, doc.Items[0].Description, "Just a few words here.")
}

func stripTags(s string) string {
	var out strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			out.WriteRune(' ')
		case !inTag:
			out.WriteRune(r)
		}
	}
	return out.String()
}
