package ports

import (
	"context"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

// UserAPI covers account and social-graph endpoints.
type UserAPI interface {
	Login(ctx context.Context, in model.LoginInput) (model.User, error)
	Signup(ctx context.Context, in model.SignupInput) (model.User, error)
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	FollowUser(ctx context.Context, userID model.ID, token string) error
	UnfollowUser(ctx context.Context, userID model.ID, token string) error
}

// PostAPI covers post reads, writes and reactions.
type PostAPI interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	PostsByUser(ctx context.Context, userID model.ID) ([]model.Post, error)
	GetPost(ctx context.Context, id model.ID) (model.Post, error)
	CreatePost(ctx context.Context, in model.PostInput, token string) (model.Post, error)
	UpdatePost(ctx context.Context, id model.ID, in model.PostInput, token string) (model.Post, error)
	DeletePost(ctx context.Context, id model.ID, token string) error
	LikePost(ctx context.Context, id model.ID, token string) error
	DislikePost(ctx context.Context, id model.ID, token string) error
}

// TopicAPI covers topic management. Writes are admin-only server side.
type TopicAPI interface {
	ListTopics(ctx context.Context) ([]model.Topic, error)
	GetTopic(ctx context.Context, id model.ID) (model.Topic, error)
	CreateTopic(ctx context.Context, in model.TopicInput, token string) (model.Topic, error)
	UpdateTopic(ctx context.Context, id model.ID, in model.TopicInput, token string) (model.Topic, error)
	DeleteTopic(ctx context.Context, id model.ID, token string) error
}

// BookmarkAPI covers the caller's bookmark list.
type BookmarkAPI interface {
	// Bookmarks returns the caller's bookmarked posts. Entries may carry only
	// an ID when the backend does not embed the post.
	Bookmarks(ctx context.Context, token string) ([]model.Post, error)
	// ToggleBookmark flips membership of postID. The response body is not
	// interpreted; callers re-fetch Bookmarks to learn the result.
	ToggleBookmark(ctx context.Context, postID, userID model.ID, token string) error
}

// GigglitAPI is the full backend surface used by the web tier.
type GigglitAPI interface {
	UserAPI
	PostAPI
	TopicAPI
	BookmarkAPI
}
