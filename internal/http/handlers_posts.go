package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/http/validation"
)

func postFormMeta(mode FormMode) PageMeta {
	if mode == FormModeEdit {
		return PageMeta{Title: "Edit post", PageTitle: "Edit post", CurrentPage: PagePostForm}
	}
	return PageMeta{Title: "New post", PageTitle: "New post", CurrentPage: PagePostForm}
}

// NewPost renders the empty post form. GET /posts/new.
func (h *UIHandlers) NewPost(w http.ResponseWriter, r *http.Request) {
	form, err := h.Posts.NewForm(r.Context())
	data := h.pageData(w, r, postFormMeta(FormModeCreate)).
		With("Mode", FormModeCreate).
		With("Topics", form.Topics).
		With("FormData", model.PostInput{})
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// CreatePost publishes a post. POST /posts (title, description, topic).
func (h *UIHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	topics := h.topicChoices(r)
	HandleForm(FormHandlerOpts[model.PostInput]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: postFormParser(topics),
		Submit: func(ctx context.Context, _ string, in model.PostInput) error {
			_, err := h.Posts.Create(ctx, GetSessionFromContext(ctx), in)
			return err
		},
		Renderer:     h.renderPage,
		SuccessURL:   "/",
		SuccessFlash: "Post published",
		PageMeta:     postFormMeta(FormModeCreate),
		ExtraData:    map[string]any{"Topics": topics},
	})
}

// EditPost renders the form for one of the viewer's posts. GET /posts/{id}/edit.
func (h *UIHandlers) EditPost(w http.ResponseWriter, r *http.Request) {
	id := model.CanonicalID(r.PathValue("id"))
	form, err := h.Posts.EditForm(r.Context(), GetSessionFromContext(r.Context()), id)
	switch {
	case err == nil:
	case apperrors.IsNotFound(err):
		h.NotFound(w, r)
		return
	case apperrors.IsForbidden(err):
		h.ErrorPage(w, r, http.StatusForbidden, apperrors.UserMessage(err))
		return
	default:
		if h.endRejectedSession(w, r, err) {
			return
		}
	}

	data := h.pageData(w, r, postFormMeta(FormModeEdit)).
		With("Mode", FormModeEdit).
		With("PostID", id).
		With("Topics", form.Topics).
		With("FormData", model.PostInput{
			Title:       form.Post.Title,
			Description: form.Post.Description,
			Topic:       form.Post.Topic.ID,
		})
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// UpdatePost saves an edited post. POST /posts/{id}.
func (h *UIHandlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	topics := h.topicChoices(r)
	id := model.CanonicalID(r.PathValue("id"))
	HandleForm(FormHandlerOpts[model.PostInput]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: postFormParser(topics),
		Submit: func(ctx context.Context, id string, in model.PostInput) error {
			_, err := h.Posts.Update(ctx, GetSessionFromContext(ctx), model.ID(id), in)
			return err
		},
		Renderer:     h.renderPage,
		SuccessURL:   "/",
		SuccessFlash: "Post updated",
		PageMeta:     postFormMeta(FormModeEdit),
		ExtraData:    map[string]any{"Topics": topics, "PostID": id},
		GetID:        func(*http.Request) string { return id.String() },
	})
}

// DeletePost removes one of the viewer's posts. POST /posts/{id}/delete.
func (h *UIHandlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := model.CanonicalID(r.PathValue("id"))
	if _, err := h.Posts.Delete(r.Context(), GetSessionFromContext(r.Context()), id, nil); err != nil {
		h.failAndRedirectBack(w, r, err, "/")
		return
	}
	SetFlash(w, FlashSuccess, "Post deleted")
	redirectBack(w, r, "/")
}

// LikePost toggles the viewer's like. POST /posts/{id}/like.
func (h *UIHandlers) LikePost(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, true)
}

// DislikePost toggles the viewer's dislike. POST /posts/{id}/dislike.
func (h *UIHandlers) DislikePost(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, false)
}

func (h *UIHandlers) react(w http.ResponseWriter, r *http.Request, like bool) {
	id := model.CanonicalID(r.PathValue("id"))
	if _, err := h.Posts.React(r.Context(), GetSessionFromContext(r.Context()), id, like); err != nil {
		h.failAndRedirectBack(w, r, err, "/")
		return
	}
	redirectBack(w, r, "/")
}

// topicChoices loads the topics a post may be filed under. A failed load
// leaves the list empty and the topic field checked for presence only.
func (h *UIHandlers) topicChoices(r *http.Request) []model.Topic {
	form, err := h.Posts.NewForm(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "topic list unavailable", slog.Any("error", err))
		return nil
	}
	return form.Topics
}

func postFormParser(topics []model.Topic) FormParser[model.PostInput] {
	return func(r *http.Request) (model.PostInput, map[string]string) {
		in := model.PostInput{
			Title:       strings.TrimSpace(r.PostFormValue("title")),
			Description: strings.TrimSpace(r.PostFormValue("description")),
			Topic:       model.CanonicalID(r.PostFormValue("topic")),
		}

		fv := validation.New().Struct(in)
		if len(topics) > 0 {
			ids := make([]string, 0, len(topics))
			for _, t := range topics {
				ids = append(ids, t.ID.String())
			}
			fv.Validate("topic", in.Topic.String(), validation.OneOf("topic", ids))
		}
		if fv.Valid() {
			return in, nil
		}
		return in, fv.Errors()
	}
}
