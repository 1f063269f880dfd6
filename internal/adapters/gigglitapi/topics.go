package gigglitapi

import (
	"context"
	"net/http"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

func (c *Client) ListTopics(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	err := c.do(ctx, call{op: "list topics", method: http.MethodGet, path: "/topics", out: &topics})
	return topics, err
}

func (c *Client) GetTopic(ctx context.Context, id model.ID) (model.Topic, error) {
	var topic model.Topic
	err := c.do(ctx, call{op: "get topic", method: http.MethodGet, path: idPath("/topics", id, ""), out: &topic})
	return topic, err
}

func (c *Client) CreateTopic(ctx context.Context, in model.TopicInput, token string) (model.Topic, error) {
	var topic model.Topic
	err := c.do(ctx, call{
		op:     "create topic",
		method: http.MethodPost,
		path:   "/topics",
		token:  token,
		authed: true,
		body:   in,
		out:    &topic,
	})
	return topic, err
}

func (c *Client) UpdateTopic(ctx context.Context, id model.ID, in model.TopicInput, token string) (model.Topic, error) {
	var topic model.Topic
	err := c.do(ctx, call{
		op:     "update topic",
		method: http.MethodPut,
		path:   idPath("/topics", id, ""),
		token:  token,
		authed: true,
		body:   in,
		out:    &topic,
	})
	return topic, err
}

func (c *Client) DeleteTopic(ctx context.Context, id model.ID, token string) error {
	return c.do(ctx, call{
		op:     "delete topic",
		method: http.MethodDelete,
		path:   idPath("/topics", id, ""),
		token:  token,
		authed: true,
	})
}
