package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/http/validation"
)

const topicsPath = "/topics/new"

func topicsMeta() PageMeta {
	return PageMeta{Title: "Topics", PageTitle: "Topics", CurrentPage: PageTopics}
}

func topicFormMeta() PageMeta {
	return PageMeta{Title: "Edit topic", PageTitle: "Edit topic", CurrentPage: PageTopicForm}
}

// TopicsPage lists topics above the create form. GET /topics/new.
func (h *UIHandlers) TopicsPage(w http.ResponseWriter, r *http.Request) {
	topics, err := h.Topics.List(r.Context())
	data := h.pageData(w, r, topicsMeta()).
		With("Mode", FormModeCreate).
		With("Topics", topics).
		With("FormData", model.TopicInput{})
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// CreateTopic adds a topic. POST /topics (name).
func (h *UIHandlers) CreateTopic(w http.ResponseWriter, r *http.Request) {
	topics, _ := h.Topics.List(r.Context())
	HandleForm(FormHandlerOpts[model.TopicInput]{
		W: w, R: r, Mode: FormModeCreate,
		Parser: parseTopicForm,
		Submit: func(ctx context.Context, _ string, in model.TopicInput) error {
			_, err := h.Topics.Create(ctx, GetSessionFromContext(ctx), in)
			return err
		},
		Renderer:     h.renderPage,
		SuccessURL:   topicsPath,
		SuccessFlash: "Topic created",
		PageMeta:     topicsMeta(),
		ExtraData:    map[string]any{"Topics": topics},
	})
}

// EditTopic renders the rename form. GET /topics/{id}/edit.
func (h *UIHandlers) EditTopic(w http.ResponseWriter, r *http.Request) {
	id := model.CanonicalID(r.PathValue("id"))
	topic, err := h.Topics.Get(r.Context(), id)
	if apperrors.IsNotFound(err) {
		h.NotFound(w, r)
		return
	}

	data := h.pageData(w, r, topicFormMeta()).
		With("Mode", FormModeEdit).
		With("TopicID", id).
		With("FormData", model.TopicInput{Name: topic.Name})
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// UpdateTopic renames a topic. POST /topics/{id}.
func (h *UIHandlers) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.TopicInput]{
		W: w, R: r, Mode: FormModeEdit,
		Parser: parseTopicForm,
		Submit: func(ctx context.Context, id string, in model.TopicInput) error {
			_, err := h.Topics.Update(ctx, GetSessionFromContext(ctx), model.CanonicalID(id), in)
			return err
		},
		Renderer:     h.renderPage,
		SuccessURL:   topicsPath,
		SuccessFlash: "Topic updated",
		PageMeta:     topicFormMeta(),
		ExtraData:    map[string]any{"TopicID": model.CanonicalID(r.PathValue("id"))},
	})
}

// DeleteTopic removes a topic and renders the re-fetched list.
// POST /topics/{id}/delete.
func (h *UIHandlers) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id := model.CanonicalID(r.PathValue("id"))
	topics, err := h.Topics.Delete(r.Context(), GetSessionFromContext(r.Context()), id)
	if err != nil && h.endRejectedSession(w, r, err) {
		return
	}

	data := NewTemplateData(r, topicsMeta()).
		With("Mode", FormModeCreate).
		With("Topics", topics).
		With("FormData", model.TopicInput{})
	if err != nil {
		data.WithFlash(&Flash{Kind: FlashError, Message: apperrors.UserMessage(err)})
	} else {
		data.WithFlash(&Flash{Kind: FlashSuccess, Message: "Topic deleted"})
	}
	HTMX(w).PushURL(topicsPath)
	h.renderPage(w, r, data.Build())
}

func parseTopicForm(r *http.Request) (model.TopicInput, map[string]string) {
	in := model.TopicInput{Name: strings.TrimSpace(r.PostFormValue("name"))}
	return in, validation.Struct(in)
}
