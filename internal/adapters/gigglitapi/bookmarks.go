package gigglitapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	jmespath "github.com/jmespath-community/go-jmespath"
)

// Bookmarks returns the caller's bookmarked posts.
//
// The response shape differs between backend versions (a bare array of posts,
// an object wrapping the array, or an array of IDs). The configured JMESPath
// expression selects the list and each element is decoded on its own.
func (c *Client) Bookmarks(ctx context.Context, token string) ([]model.Post, error) {
	var raw any
	if err := c.do(ctx, call{
		op:     "list bookmarks",
		method: http.MethodGet,
		path:   "/bookmarks",
		token:  token,
		authed: true,
		out:    &raw,
	}); err != nil {
		return nil, err
	}
	return decodeBookmarkList(c.bookmarkExpr, raw)
}

// ToggleBookmark flips bookmark membership of postID for userID. The response
// body is deliberately ignored; see ports.BookmarkAPI.
func (c *Client) ToggleBookmark(ctx context.Context, postID, userID model.ID, token string) error {
	return c.do(ctx, call{
		op:     "toggle bookmark",
		method: http.MethodPost,
		path:   idPath("/bookmarks", postID, ""),
		token:  token,
		authed: true,
		body:   map[string]string{"userId": userID.String()},
	})
}

func decodeBookmarkList(expr string, raw any) ([]model.Post, error) {
	if raw == nil {
		return []model.Post{}, nil
	}

	selected, err := jmespath.Search(expr, raw)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, apperrors.GenericMessage)
	}
	if selected == nil {
		return []model.Post{}, nil
	}

	items, ok := selected.([]any)
	if !ok {
		return nil, apperrors.FromStatus(http.StatusBadGateway, "Unexpected bookmarks response")
	}

	posts := make([]model.Post, 0, len(items))
	for _, item := range items {
		post, ok := decodeBookmarkItem(item)
		if !ok {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// decodeBookmarkItem accepts a post object, a bare ID or an {"$oid"} object.
// A post object whose other fields do not decode is kept by its ID alone.
func decodeBookmarkItem(item any) (model.Post, bool) {
	if obj, ok := item.(map[string]any); ok {
		if _, isOID := obj["$oid"]; !isOID {
			if post, ok := decodePostObject(obj); ok {
				return post, true
			}
		}
	}

	id := model.IDFromAny(item)
	if id.IsZero() {
		return model.Post{}, false
	}
	return model.Post{ID: id}, true
}

func decodePostObject(obj map[string]any) (model.Post, bool) {
	b, err := json.Marshal(obj)
	if err != nil {
		return model.Post{}, false
	}
	var post model.Post
	if err := json.Unmarshal(b, &post); err != nil || post.ID.IsZero() {
		return model.Post{}, false
	}
	return post, true
}
