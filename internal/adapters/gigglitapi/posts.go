package gigglitapi

import (
	"context"
	"net/http"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

// ListPosts returns every post. The collection is public.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := c.do(ctx, call{op: "list posts", method: http.MethodGet, path: "/posts", out: &posts})
	return posts, err
}

// PostsByUser returns the feed for userID.
func (c *Client) PostsByUser(ctx context.Context, userID model.ID) ([]model.Post, error) {
	var posts []model.Post
	err := c.do(ctx, call{
		op:     "posts by user",
		method: http.MethodGet,
		path:   idPath("/posts", userID, "/user"),
		out:    &posts,
	})
	return posts, err
}

// GetPost returns a single post.
func (c *Client) GetPost(ctx context.Context, id model.ID) (model.Post, error) {
	var post model.Post
	err := c.do(ctx, call{op: "get post", method: http.MethodGet, path: idPath("/posts", id, ""), out: &post})
	return post, err
}

// CreatePost publishes a new post as the token's owner.
func (c *Client) CreatePost(ctx context.Context, in model.PostInput, token string) (model.Post, error) {
	var post model.Post
	err := c.do(ctx, call{
		op:     "create post",
		method: http.MethodPost,
		path:   "/posts",
		token:  token,
		authed: true,
		body:   in,
		out:    &post,
	})
	return post, err
}

// UpdatePost replaces a post's title, description and topic.
func (c *Client) UpdatePost(ctx context.Context, id model.ID, in model.PostInput, token string) (model.Post, error) {
	var post model.Post
	err := c.do(ctx, call{
		op:     "update post",
		method: http.MethodPut,
		path:   idPath("/posts", id, ""),
		token:  token,
		authed: true,
		body:   in,
		out:    &post,
	})
	return post, err
}

// DeletePost removes a post. A post that is already gone yields a NotFound error.
func (c *Client) DeletePost(ctx context.Context, id model.ID, token string) error {
	return c.do(ctx, call{
		op:     "delete post",
		method: http.MethodDelete,
		path:   idPath("/posts", id, ""),
		token:  token,
		authed: true,
	})
}

// LikePost toggles the caller's like. The server owns the toggle semantics.
func (c *Client) LikePost(ctx context.Context, id model.ID, token string) error {
	return c.do(ctx, call{
		op:     "like post",
		method: http.MethodPut,
		path:   idPath("/posts", id, "/like"),
		token:  token,
		authed: true,
		body:   struct{}{},
	})
}

// DislikePost toggles the caller's dislike.
func (c *Client) DislikePost(ctx context.Context, id model.ID, token string) error {
	return c.do(ctx, call{
		op:     "dislike post",
		method: http.MethodPut,
		path:   idPath("/posts", id, "/dislike"),
		token:  token,
		authed: true,
		body:   struct{}{},
	})
}
