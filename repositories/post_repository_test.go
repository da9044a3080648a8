package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikolay/myblog/models"
)

func TestListPublishedVisibilityAndOrdering(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	seedPost(t, db, author, "Oldest", "oldest", models.StatusPublished, daysAgo(3))
	seedPost(t, db, author, "Middle", "middle", models.StatusPublished, daysAgo(2))
	seedPost(t, db, author, "Newest", "newest", models.StatusPublished, daysAgo(1))
	seedPost(t, db, author, "Draft", "draft", models.StatusDraft, daysAgo(1))
	seedPost(t, db, author, "Scheduled", "scheduled", models.StatusPublished, time.Now().Add(48*time.Hour))

	posts, pagination, err := repo.ListPublished("", 1, 10)
	require.NoError(t, err)

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Newest", "Middle", "Oldest"}, titles)
	assert.Equal(t, int64(3), pagination.TotalItems)
	assert.Equal(t, 1, pagination.TotalPages)
	assert.False(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)
}

func TestListPublishedPagination(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	for i := 1; i <= 7; i++ {
		seedPost(t, db, author, "Post", "post-"+string(rune('a'+i-1)), models.StatusPublished, daysAgo(i))
	}

	t.Run("valid page returns correct slice", func(t *testing.T) {
		posts, pagination, err := repo.ListPublished("", 2, 3)
		require.NoError(t, err)
		require.Len(t, posts, 3)
		// Newest first overall, so page 2 holds the 4th..6th most recent.
		assert.Equal(t, "post-d", posts[0].Slug)
		assert.Equal(t, "post-f", posts[2].Slug)
		assert.Equal(t, 2, pagination.Page)
		assert.Equal(t, 3, pagination.TotalPages)
		assert.True(t, pagination.HasNext)
		assert.True(t, pagination.HasPrev)
	})

	t.Run("page beyond range clamps to last page", func(t *testing.T) {
		posts, pagination, err := repo.ListPublished("", 99, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, pagination.Page)
		require.Len(t, posts, 1)
		assert.Equal(t, "post-g", posts[0].Slug)
		assert.False(t, pagination.HasNext)
	})

	t.Run("page below range clamps to first page", func(t *testing.T) {
		_, pagination, err := repo.ListPublished("", 0, 3)
		require.NoError(t, err)
		assert.Equal(t, 1, pagination.Page)
	})

	t.Run("empty listing still reports one page", func(t *testing.T) {
		emptyDB := newTestDB(t)
		emptyRepo := NewPostRepository(emptyDB)
		posts, pagination, err := emptyRepo.ListPublished("", 5, 3)
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 1, pagination.TotalPages)
	})
}

func TestListPublishedByTag(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	golang := seedTag(t, db, "Go", "golang")
	python := seedTag(t, db, "Python", "python")
	unused := seedTag(t, db, "Unused", "unused")

	seedPost(t, db, author, "Go post", "go-post", models.StatusPublished, daysAgo(1), golang)
	seedPost(t, db, author, "Python post", "python-post", models.StatusPublished, daysAgo(2), python)
	seedPost(t, db, author, "Go draft", "go-draft", models.StatusDraft, daysAgo(1), golang)

	t.Run("filters to the tagged posts", func(t *testing.T) {
		posts, pagination, err := repo.ListPublished("golang", 1, 10)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "go-post", posts[0].Slug)
		assert.Equal(t, int64(1), pagination.TotalItems)
	})

	t.Run("unknown tag is not found", func(t *testing.T) {
		_, _, err := repo.ListPublished("no-such-tag", 1, 10)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("known tag without published posts is an empty page", func(t *testing.T) {
		posts, _, err := repo.ListPublished(unused.Slug, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestGetPublishedBySlugAndDate(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	published := time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local)
	seedPost(t, db, author, "Hello world", "hello-world", models.StatusPublished, published)
	// Same slug is legal on a different publish date.
	seedPost(t, db, author, "Hello again", "hello-world", models.StatusPublished, time.Date(2024, 4, 1, 9, 0, 0, 0, time.Local))
	seedPost(t, db, author, "Hidden draft", "hidden-draft", models.StatusDraft, published)

	t.Run("resolves the composite key", func(t *testing.T) {
		post, err := repo.GetPublishedBySlugAndDate(2024, 3, 5, "hello-world")
		require.NoError(t, err)
		assert.Equal(t, "Hello world", post.Title)
	})

	t.Run("same slug on another date resolves independently", func(t *testing.T) {
		post, err := repo.GetPublishedBySlugAndDate(2024, 4, 1, "hello-world")
		require.NoError(t, err)
		assert.Equal(t, "Hello again", post.Title)
	})

	t.Run("wrong day is not found", func(t *testing.T) {
		_, err := repo.GetPublishedBySlugAndDate(2024, 3, 6, "hello-world")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("draft is not found even on an exact match", func(t *testing.T) {
		_, err := repo.GetPublishedBySlugAndDate(2024, 3, 5, "hidden-draft")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetPublishedByID(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	post := seedPost(t, db, author, "Visible", "visible", models.StatusPublished, daysAgo(1))
	draft := seedPost(t, db, author, "Draft", "draft", models.StatusDraft, daysAgo(1))

	got, err := repo.GetPublishedByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Visible", got.Title)

	_, err = repo.GetPublishedByID(draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetPublishedByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSimilarPosts(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	python := seedTag(t, db, "Python", "python")
	django := seedTag(t, db, "Django", "django")
	golang := seedTag(t, db, "Go", "golang")

	subject := seedPost(t, db, author, "Hello world", "hello-world", models.StatusPublished,
		time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local), python, django)
	oneShared := seedPost(t, db, author, "Python only", "python-only", models.StatusPublished, daysAgo(1), python)
	bothShared := seedPost(t, db, author, "Python and Django", "python-django", models.StatusPublished, daysAgo(30), python, django)
	seedPost(t, db, author, "Unrelated", "unrelated", models.StatusPublished, daysAgo(1), golang)
	seedPost(t, db, author, "Shared but draft", "shared-draft", models.StatusDraft, daysAgo(1), python)

	t.Run("ranked by shared tag count then recency", func(t *testing.T) {
		similar, err := repo.SimilarPosts(&subject, 4)
		require.NoError(t, err)
		require.Len(t, similar, 2)
		// Two shared tags beat one shared tag despite being much older.
		assert.Equal(t, bothShared.ID, similar[0].ID)
		assert.Equal(t, oneShared.ID, similar[1].ID)
	})

	t.Run("single shared tag ranks first when alone", func(t *testing.T) {
		similar, err := repo.SimilarPosts(&oneShared, 4)
		require.NoError(t, err)
		require.NotEmpty(t, similar)
		for _, p := range similar {
			assert.NotEqual(t, oneShared.ID, p.ID)
		}
	})

	t.Run("respects the limit", func(t *testing.T) {
		similar, err := repo.SimilarPosts(&subject, 1)
		require.NoError(t, err)
		assert.Len(t, similar, 1)
	})

	t.Run("post without tags has no similar posts", func(t *testing.T) {
		bare := seedPost(t, db, author, "Bare", "bare", models.StatusPublished, daysAgo(1))
		similar, err := repo.SimilarPosts(&bare, 4)
		require.NoError(t, err)
		assert.Empty(t, similar)
	})
}

func TestRecentAndCount(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)

	for i := 1; i <= 7; i++ {
		seedPost(t, db, author, "Post", "recent-"+string(rune('a'+i-1)), models.StatusPublished, daysAgo(i))
	}
	seedPost(t, db, author, "Draft", "recent-draft", models.StatusDraft, daysAgo(1))

	recent, err := repo.Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "recent-a", recent[0].Slug)
	assert.Equal(t, "recent-e", recent[4].Slug)

	total, err := repo.CountPublished()
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

func TestMostCommented(t *testing.T) {
	db := newTestDB(t)
	author := seedAuthor(t, db)
	repo := NewPostRepository(db)
	comments := NewCommentRepository(db)

	quiet := seedPost(t, db, author, "Quiet", "quiet", models.StatusPublished, daysAgo(3))
	busy := seedPost(t, db, author, "Busy", "busy", models.StatusPublished, daysAgo(2))
	moderated := seedPost(t, db, author, "Moderated", "moderated", models.StatusPublished, daysAgo(1))

	for i := 0; i < 3; i++ {
		require.NoError(t, comments.Create(&models.Comment{PostID: busy.ID, Name: "v", Email: "v@example.com", Body: "hi"}))
	}
	// Deactivated comments must not count.
	deactivated := models.Comment{PostID: moderated.ID, Name: "v", Email: "v@example.com", Body: "hi"}
	require.NoError(t, comments.Create(&deactivated))
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", deactivated.ID).Update("active", false).Error)

	ranked, err := repo.MostCommented(5)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, busy.ID, ranked[0].ID)
	// The remaining two are tied on zero active comments; recency breaks it.
	assert.Equal(t, moderated.ID, ranked[1].ID)
	assert.Equal(t, quiet.ID, ranked[2].ID)
}
