package gigglitapi

import (
	"context"
	"net/http"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

// Login exchanges credentials for the user record and bearer token.
func (c *Client) Login(ctx context.Context, in model.LoginInput) (model.User, error) {
	var user model.User
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/user/login",
		body:   in,
		out:    &user,
	})
	return user, err
}

// Signup registers a new account and returns it with a bearer token.
func (c *Client) Signup(ctx context.Context, in model.SignupInput) (model.User, error) {
	var user model.User
	err := c.do(ctx, call{
		op:     "signup",
		method: http.MethodPost,
		path:   "/user/signup",
		body:   in,
		out:    &user,
	})
	return user, err
}

// ListUsers returns every account visible to the caller.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, call{
		op:     "list users",
		method: http.MethodGet,
		path:   "/user",
		token:  token,
		authed: true,
		out:    &users,
	})
	return users, err
}

// FollowUser adds the caller to userID's followers.
func (c *Client) FollowUser(ctx context.Context, userID model.ID, token string) error {
	return c.do(ctx, call{
		op:     "follow user",
		method: http.MethodPut,
		path:   idPath("/user/follow", userID, ""),
		token:  token,
		authed: true,
		body:   struct{}{},
	})
}

// UnfollowUser removes the caller from userID's followers.
func (c *Client) UnfollowUser(ctx context.Context, userID model.ID, token string) error {
	return c.do(ctx, call{
		op:     "unfollow user",
		method: http.MethodPut,
		path:   idPath("/user/unfollow", userID, ""),
		token:  token,
		authed: true,
		body:   struct{}{},
	})
}
