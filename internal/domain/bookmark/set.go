// Package bookmark derives per-post bookmark state from the bookmark list
// returned by the backend.
package bookmark

import "github.com/gigglit/gigglit-web/internal/domain/model"

// State is the bookmark affordance for one rendered post.
type State int

const (
	// StateUnknown means no bookmark list has been fetched yet.
	StateUnknown State = iota
	StateNotBookmarked
	StateBookmarked
)

func (s State) String() string {
	switch s {
	case StateBookmarked:
		return "bookmarked"
	case StateNotBookmarked:
		return "not_bookmarked"
	default:
		return "unknown"
	}
}

// Set holds canonical post IDs from one successful bookmarks fetch.
// The zero value is an unfetched set: every lookup yields StateUnknown.
type Set struct {
	ids     map[model.ID]struct{}
	fetched bool
}

// NewSet reduces a fetched bookmark collection to its canonical ID set.
func NewSet(ids []model.ID) Set {
	s := Set{ids: make(map[model.ID]struct{}, len(ids)), fetched: true}
	for _, id := range ids {
		if c := model.CanonicalID(string(id)); !c.IsZero() {
			s.ids[c] = struct{}{}
		}
	}
	return s
}

// FromPosts builds a set from bookmarked posts.
func FromPosts(posts []model.Post) Set {
	ids := make([]model.ID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return NewSet(ids)
}

// Fetched reports whether the set reflects a completed fetch.
func (s Set) Fetched() bool { return s.fetched }

// Len returns the number of bookmarked posts.
func (s Set) Len() int { return len(s.ids) }

// Contains reports membership after canonicalizing postID.
func (s Set) Contains(postID model.ID) bool {
	if !s.fetched {
		return false
	}
	_, ok := s.ids[model.CanonicalID(string(postID))]
	return ok
}

// StateOf returns the affordance state for postID.
func (s Set) StateOf(postID model.ID) State {
	if !s.fetched {
		return StateUnknown
	}
	if s.Contains(postID) {
		return StateBookmarked
	}
	return StateNotBookmarked
}
