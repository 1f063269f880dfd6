package httpx

import (
	"net/http"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/bookmark"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/service"
)

// BookmarksPage lists the viewer's bookmarked posts. GET /bookmark.
func (h *UIHandlers) BookmarksPage(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	posts, err := h.Bookmarks.Posts(r.Context(), sess)
	if err != nil && h.endRejectedSession(w, r, err) {
		return
	}

	data := h.pageData(w, r, PageMeta{Title: "Bookmarks", PageTitle: "Your bookmarks", CurrentPage: PageBookmarks}).
		With("Posts", service.AnnotatePosts(posts, domainauth.UserID(sess), bookmark.FromPosts(posts)))
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// ToggleBookmark adds or removes a bookmark. POST /posts/{id}/bookmark.
// The form's "bookmarked" field carries the state the button showed, which
// htmx keeps on screen if the toggle fails.
func (h *UIHandlers) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id := model.CanonicalID(r.PathValue("id"))
	if id.IsZero() {
		h.NotFound(w, r)
		return
	}

	prev := shownBookmarkState(id, r.PostFormValue("bookmarked"))
	after, err := h.Bookmarks.Toggle(r.Context(), GetSessionFromContext(r.Context()), id, prev)
	if !IsHTMX(r) {
		if err != nil {
			h.failAndRedirectBack(w, r, err, "/")
			return
		}
		redirectBack(w, r, "/")
		return
	}

	if err != nil {
		if h.endRejectedSession(w, r, err) {
			return
		}
		triggerToast(w, apperrors.UserMessage(err), FlashError)
	}
	h.renderFragment(w, r, "bookmark-button", map[string]any{
		"PostID":    id,
		"State":     after.StateOf(id),
		"CSRFToken": GetCSRFToken(r),
	})
}

func shownBookmarkState(id model.ID, shown string) bookmark.Set {
	switch shown {
	case "true":
		return bookmark.NewSet([]model.ID{id})
	case "false":
		return bookmark.NewSet(nil)
	default:
		return bookmark.Set{}
	}
}
