package httpx

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gigglit/gigglit-web/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	user, session := app.loginAs("Ada", model.RoleUser)

	rec := app.post("/posts", url.Values{
		"title":       {"  Hello  "},
		"description": {"First post"},
		"topic":       {topic.ID.String()},
	}, withSession(session))

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/", rec.Header().Get("Location"))
	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	assert.Equal(t, "Post published", flash.Message)

	posts := app.backend.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
	assert.Equal(t, user.ID, posts[0].User.ID)
	assert.Equal(t, topic.ID, posts[0].Topic.ID)
}

func TestCreatePost_Validation(t *testing.T) {
	app := newTestApp(t)
	app.backend.AddTopic("News")
	_, session := app.loginAs("Ada", model.RoleUser)

	t.Run("unknown topic", func(t *testing.T) {
		app.backend.ResetRequests()
		rec := app.post("/posts", url.Values{
			"title":       {"Hello"},
			"description": {"Body"},
			"topic":       {"ffffffffffffffffffffffff"},
		}, withSession(session))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Choose a valid topic.")
		assert.Contains(t, rec.Body.String(), `value="Hello"`, "input is kept")
		for _, req := range app.backend.Requests() {
			assert.NotEqual(t, http.MethodPost, req.Method, "nothing is published")
		}
	})

	t.Run("blank fields", func(t *testing.T) {
		rec := app.post("/posts", url.Values{"title": {"   "}}, withSession(session))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please fill up all the fields")
		assert.Empty(t, app.backend.Posts())
	})
}

func TestNewPost_ListsTopics(t *testing.T) {
	app := newTestApp(t)
	app.backend.AddTopic("News")
	app.backend.AddTopic("Sports")
	_, session := app.loginAs("Ada", model.RoleUser)

	rec := app.get("/posts/new", withSession(session))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"News", "Sports", `action="/posts"`}))
}

func TestEditPost(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	author, authorSession := app.loginAs("Ada", model.RoleUser)
	_, otherSession := app.loginAs("Bob", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Original", "Body")
	editPath := "/posts/" + post.ID.String() + "/edit"

	t.Run("author sees the form", func(t *testing.T) {
		rec := app.get(editPath, withSession(authorSession))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `value="Original"`)
		assert.Contains(t, body, `action="/posts/`+post.ID.String()+`"`)
	})

	t.Run("other users are refused", func(t *testing.T) {
		rec := app.get(editPath, withSession(otherSession))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "You can only edit your own posts")
	})

	t.Run("missing post", func(t *testing.T) {
		rec := app.get("/posts/ffffffffffffffffffffffff/edit", withSession(authorSession))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdatePost(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	other := app.backend.AddTopic("Sports")
	author, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Original", "Body")

	rec := app.post("/posts/"+post.ID.String(), url.Values{
		"title":       {"Edited"},
		"description": {"New body"},
		"topic":       {other.ID.String()},
	}, withSession(session))

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	assert.Equal(t, "Post updated", flash.Message)

	posts := app.backend.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "Edited", posts[0].Title)
	assert.Equal(t, other.ID, posts[0].Topic.ID)
}

func TestUpdatePost_ForbiddenShowsBackendMessage(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	author := app.backend.AddUser("Ada", "ada@example.com", "secret", model.RoleUser)
	_, session := app.loginAs("Bob", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Original", "Body")

	rec := app.post("/posts/"+post.ID.String(), url.Values{
		"title":       {"Hijacked"},
		"description": {"Body"},
		"topic":       {topic.ID.String()},
	}, withSession(session))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You can only edit your own posts")
	assert.Equal(t, "Original", app.backend.Posts()[0].Title)
}

func TestDeletePost(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	author, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Mine", "Body")

	rec := app.post("/posts/"+post.ID.String()+"/delete", nil,
		withSession(session), withReferer("http://localhost/bookmark"))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/bookmark", rec.Header().Get("Location"))
	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	assert.Equal(t, FlashSuccess, flash.Kind)
	assert.Equal(t, "Post deleted", flash.Message)
	assert.Empty(t, app.backend.Posts())
}

func TestDeletePost_NotOwner(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	author := app.backend.AddUser("Ada", "ada@example.com", "secret", model.RoleUser)
	_, session := app.loginAs("Bob", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Theirs", "Body")

	rec := app.post("/posts/"+post.ID.String()+"/delete", nil, withSession(session))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	assert.Equal(t, FlashError, flash.Kind)
	assert.Equal(t, "You can only delete your own posts", flash.Message)
	assert.Len(t, app.backend.Posts(), 1)
}

func TestReactions(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	author := app.backend.AddUser("Ada", "ada@example.com", "secret", model.RoleUser)
	viewer, session := app.loginAs("Bob", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Post", "Body")
	base := "/posts/" + post.ID.String()

	rec := app.post(base+"/like", nil, withSession(session), withReferer("http://localhost/?sort=mostLikes"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?sort=mostLikes", rec.Header().Get("Location"))
	assert.Equal(t, []model.ID{viewer.ID}, app.backend.Posts()[0].Likes)

	app.post(base+"/dislike", nil, withSession(session))
	got := app.backend.Posts()[0]
	assert.Empty(t, got.Likes, "a dislike replaces the like")
	assert.Equal(t, []model.ID{viewer.ID}, got.Dislikes)
}

func TestRejectedTokenEndsSession(t *testing.T) {
	app := newTestApp(t)
	topic := app.backend.AddTopic("News")
	author, session := app.loginAs("Ada", model.RoleUser)
	post := app.backend.AddPost(author, topic, "Post", "Body")
	app.backend.FailNext(http.MethodPut, "/posts/"+post.ID.String()+"/like", http.StatusUnauthorized, "jwt expired")

	rec := app.post("/posts/"+post.ID.String()+"/like", nil,
		withSession(session), withReferer("http://localhost/bookmark"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirect_uri="+url.QueryEscape("/bookmark"), rec.Header().Get("Location"))
	c := responseCookie(rec, DefaultSessionCookieName)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
	_, err := app.store.Get(t.Context(), session.Value)
	assert.Error(t, err)

	flash := flashFrom(t, rec)
	require.NotNil(t, flash)
	assert.Equal(t, FlashError, flash.Kind)
}
