package httpx

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gigglit/gigglit-web/internal/domain/model"
	"github.com/gigglit/gigglit-web/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	bookmarkedButton    = `>Bookmarked</button>`
	notBookmarkedButton = `>Bookmark</button>`
	unknownButton       = `>Bookmark?</button>`
)

func TestToggleBookmark_HTMX(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	user, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(user, topic, "Post", "Body")
	path := "/bookmarks/" + post.ID.String() + "/toggle"

	rec := app.post(path, url.Values{"bookmarked": {"false"}}, withSession(session), withHTMX())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), bookmarkedButton)
	assert.Contains(t, rec.Body.String(), `name="bookmarked" value="true"`)
	assert.Equal(t, []model.ID{post.ID}, app.backend.BookmarkIDs(user.ID))

	rec = app.post(path, url.Values{"bookmarked": {"true"}}, withSession(session), withHTMX())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), notBookmarkedButton)
	assert.NotContains(t, rec.Body.String(), bookmarkedButton)
	assert.Empty(t, app.backend.BookmarkIDs(user.ID))
}

func TestToggleBookmark_SendsUserID(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	user, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(user, topic, "Post", "Body")
	app.backend.ResetRequests()

	app.post("/bookmarks/"+post.ID.String()+"/toggle", nil, withSession(session), withHTMX())

	var toggle *testutil.RecordedRequest
	for _, req := range app.backend.Requests() {
		if req.Method == http.MethodPost {
			toggle = &req
		}
	}
	require.NotNil(t, toggle)
	assert.Equal(t, "/bookmarks/"+post.ID.String(), toggle.Path)
	assert.JSONEq(t, `{"userId":"`+user.ID.String()+`"}`, toggle.Body)
	assert.Equal(t, "Bearer tok-"+user.ID.String(), toggle.Authorization)
}

func TestToggleBookmark_Failures(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	user, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(user, topic, "Post", "Body")
	path := "/bookmarks/" + post.ID.String() + "/toggle"

	t.Run("toggle fails and keeps the shown state", func(t *testing.T) {
		app.backend.FailNext(http.MethodPost, "/bookmarks/"+post.ID.String(), http.StatusNotFound, "Post not found")

		rec := app.post(path, url.Values{"bookmarked": {"true"}}, withSession(session), withHTMX())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), bookmarkedButton)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "Post not found")
	})

	t.Run("re-fetch fails and the state becomes unknown", func(t *testing.T) {
		app.backend.FailNext(http.MethodGet, "/bookmarks", http.StatusServiceUnavailable, "Try again later")

		rec := app.post(path, url.Values{"bookmarked": {"false"}}, withSession(session), withHTMX())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), unknownButton)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), "showToast")
		assert.Equal(t, []model.ID{post.ID}, app.backend.BookmarkIDs(user.ID), "the toggle itself went through")
	})
}

func TestToggleBookmark_PlainForm(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	user, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(user, topic, "Post", "Body")

	rec := app.post("/bookmarks/"+post.ID.String()+"/toggle", nil,
		withSession(session), withReferer("http://localhost/?q=post"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?q=post", rec.Header().Get("Location"))
	assert.Equal(t, []model.ID{post.ID}, app.backend.BookmarkIDs(user.ID))
}

func TestBookmarksPage(t *testing.T) {
	shapes := map[string]testutil.BookmarkShape{
		"embedded posts": testutil.BookmarkPosts,
		"wrapped":        testutil.BookmarkWrapped,
		"object ids":     testutil.BookmarkObjectIDs,
	}
	for name, shape := range shapes {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t)
			app.backend.SetBookmarkShape(shape)
			topic := app.backend.AddTopic("News")
			author := app.backend.AddUser("Bob", "bob@example.com", "secret", model.RoleUser)
			_, session := app.loginAs("Ada", model.RoleUser)
			kept := app.backend.AddPost(author, topic, "Kept post", "Body")
			app.backend.AddPost(author, topic, "Other post", "Body")

			toggle := app.post("/bookmarks/"+kept.ID.String()+"/toggle", nil, withSession(session))
			require.Equal(t, http.StatusSeeOther, toggle.Code)

			rec := app.get("/bookmark", withSession(session))

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Kept post")
			assert.NotContains(t, body, "Other post")
			assert.Contains(t, body, bookmarkedButton)
		})
	}
}

func TestBookmarksPage_Empty(t *testing.T) {
	app := newTestApp(t)
	_, session := app.loginAs("Ada", model.RoleUser)

	rec := app.get("/bookmark", withSession(session))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookmarked any posts yet")
}
