package httpx

import (
	"net/http"

	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
)

const adminPostsPath = "/adminPosts"

func adminPostsMeta() PageMeta {
	return PageMeta{Title: "All posts", PageTitle: "All posts", CurrentPage: PageAdminPosts}
}

// AdminPosts lists every post with a delete affordance. GET /adminPosts.
func (h *UIHandlers) AdminPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.All(r.Context())
	data := h.pageData(w, r, adminPostsMeta()).With("Posts", posts)
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// AdminDeletePost deletes any post and renders the list without it. The post
// leaves the list only when the backend confirmed the delete.
// POST /adminPosts/{id}/delete.
func (h *UIHandlers) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	id := model.CanonicalID(r.PathValue("id"))
	current, listErr := h.Posts.All(r.Context())

	remaining, err := h.Posts.Delete(r.Context(), GetSessionFromContext(r.Context()), id, current)
	if err != nil && h.endRejectedSession(w, r, err) {
		return
	}

	data := NewTemplateData(r, adminPostsMeta()).With("Posts", remaining)
	switch {
	case err != nil:
		data.WithFlash(&Flash{Kind: FlashError, Message: apperrors.UserMessage(err)})
	case listErr != nil:
		data.WithFlash(&Flash{Kind: FlashSuccess, Message: "Post deleted"})
		data.WithError(apperrors.UserMessage(listErr))
	default:
		data.WithFlash(&Flash{Kind: FlashSuccess, Message: "Post deleted"})
	}
	HTMX(w).PushURL(adminPostsPath)
	h.renderPage(w, r, data.Build())
}
