// Package feed holds the pure list operations behind the home page:
// search filtering, like/dislike ordering and the follow list patch.
package feed

import (
	"slices"
	"strings"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

// SortCriteria selects the post ordering.
type SortCriteria string

const (
	SortNone         SortCriteria = ""
	SortMostLikes    SortCriteria = "mostLikes"
	SortMostDislikes SortCriteria = "mostDislikes"
)

// ParseSort maps a query value onto a known criteria; unknown values keep input order.
func ParseSort(v string) SortCriteria {
	switch SortCriteria(strings.TrimSpace(v)) {
	case SortMostLikes:
		return SortMostLikes
	case SortMostDislikes:
		return SortMostDislikes
	default:
		return SortNone
	}
}

// Filter returns the posts whose title, description or topic name contains
// query, compared case-insensitively. An empty query returns every post.
func Filter(posts []model.Post, query string) []model.Post {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p model.Post, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Topic.Name), q)
}

// Sort returns a copy of posts ordered by criteria, descending and stable.
func Sort(posts []model.Post, criteria SortCriteria) []model.Post {
	out := slices.Clone(posts)

	var key func(model.Post) int
	switch criteria {
	case SortMostLikes:
		key = model.Post.LikeCount
	case SortMostDislikes:
		key = model.Post.DislikeCount
	default:
		return out
	}

	slices.SortStableFunc(out, func(a, b model.Post) int {
		return key(b) - key(a)
	})
	return out
}

// ApplyFollowPatch returns a copy of users where actor has been added to
// (follow) or removed from (unfollow) the target's follower list. The patch is
// advisory UI feedback; a refetch of the user list replaces it.
func ApplyFollowPatch(users []model.User, target, actor model.ID, follow bool) []model.User {
	tgt := model.CanonicalID(string(target))
	act := model.CanonicalID(string(actor))

	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u
		if model.CanonicalID(string(u.ID)) != tgt || act.IsZero() {
			continue
		}
		followers := make([]model.ID, 0, len(u.Followers)+1)
		for _, f := range u.Followers {
			if model.CanonicalID(string(f)) != act {
				followers = append(followers, f)
			}
		}
		if follow {
			followers = append(followers, act)
		}
		out[i].Followers = followers
	}
	return out
}

// Others returns users other than self, for the "All Users" sidebar.
func Others(users []model.User, self model.ID) []model.User {
	me := model.CanonicalID(string(self))
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if model.CanonicalID(string(u.ID)) == me {
			continue
		}
		out = append(out, u)
	}
	return out
}
