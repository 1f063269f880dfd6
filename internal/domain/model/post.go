package model

import "time"

// Post is a Gigglit post as returned by the backend.
type Post struct {
	ID          ID        `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	User        UserRef   `json:"user"`
	Topic       TopicRef  `json:"topic"`
	Likes       []ID      `json:"likes"`
	Dislikes    []ID      `json:"dislikes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikeCount returns the number of users liking the post.
func (p Post) LikeCount() int { return len(p.Likes) }

// DislikeCount returns the number of users disliking the post.
func (p Post) DislikeCount() int { return len(p.Dislikes) }

// LikedBy reports whether actor is in the like set.
func (p Post) LikedBy(actor ID) bool { return ContainsID(p.Likes, actor) }

// DislikedBy reports whether actor is in the dislike set.
func (p Post) DislikedBy(actor ID) bool { return ContainsID(p.Dislikes, actor) }

// OwnedBy reports whether actor authored the post.
func (p Post) OwnedBy(actor ID) bool {
	if actor.IsZero() {
		return false
	}
	return CanonicalID(string(p.User.ID)) == CanonicalID(string(actor))
}

// IsHydrated reports whether the post carries content beyond its identifier.
// Some bookmark responses only list IDs.
func (p Post) IsHydrated() bool {
	return p.Title != "" || p.Description != ""
}

// RemovePost returns posts without the entry whose ID matches id.
// The input slice is not modified.
func RemovePost(posts []Post, id ID) []Post {
	want := CanonicalID(string(id))
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if CanonicalID(string(p.ID)) == want {
			continue
		}
		out = append(out, p)
	}
	return out
}
