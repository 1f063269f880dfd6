package service

import (
	"context"
	"log/slog"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/bookmark"
	"github.com/gigglit/gigglit-web/internal/domain/feed"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/ports"
	"golang.org/x/sync/errgroup"
)

// PostView is a post annotated for the current viewer.
type PostView struct {
	model.Post
	Liked    bool
	Disliked bool
	Owned    bool
	Bookmark bookmark.State
}

// Bookmarked reports whether the post is known to be bookmarked.
func (v PostView) Bookmarked() bool { return v.Bookmark == bookmark.StateBookmarked }

// UserView is a user annotated with the viewer's follow relation.
type UserView struct {
	model.User
	Following bool
}

// HomeFeed is everything the home page renders.
type HomeFeed struct {
	LoggedIn  bool
	Query     string
	Sort      feed.SortCriteria
	Posts     []PostView
	Users     []UserView
	Bookmarks bookmark.Set
}

// FeedServiceOptions groups dependencies for FeedService.
type FeedServiceOptions struct {
	API    ports.GigglitAPI
	Logger *slog.Logger
}

// FeedService assembles the home feed and the follow graph around it.
type FeedService struct {
	api    ports.GigglitAPI
	logger *slog.Logger
}

// NewFeedService constructs a new FeedService.
func NewFeedService(opts FeedServiceOptions) *FeedService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{api: opts.API, logger: logger}
}

// Home fetches the viewer's posts, the user list and the bookmark list
// concurrently, then filters, sorts and annotates the posts. Each part fails
// independently: the feed carries whatever loaded and the first error is
// returned alongside it. Visitors get an empty feed without any request.
func (s *FeedService) Home(ctx context.Context, sess *domainauth.Session, query string, sort feed.SortCriteria) (HomeFeed, error) {
	out := HomeFeed{Query: query, Sort: sort}
	if !domainauth.IsLoggedIn(sess) {
		return out, nil
	}
	out.LoggedIn = true

	var (
		posts []model.Post
		users []model.User
		marks []model.Post
		g     errgroup.Group
	)
	userID := domainauth.UserID(sess)
	token := domainauth.Token(sess)

	g.Go(func() error {
		var err error
		posts, err = s.api.PostsByUser(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.api.ListUsers(ctx, token)
		return err
	})
	var marksErr error
	g.Go(func() error {
		marks, marksErr = s.api.Bookmarks(ctx, token)
		return marksErr
	})
	err := g.Wait()

	if marksErr == nil {
		out.Bookmarks = bookmark.FromPosts(marks)
	}
	out.Posts = AnnotatePosts(feed.Sort(feed.Filter(posts, query), sort), userID, out.Bookmarks)
	out.Users = AnnotateUsers(feed.Others(users, userID), userID)

	if err != nil {
		s.logger.DebugContext(ctx, "home feed partially loaded", "error", err)
	}
	return out, err
}

// Follow follows (or unfollows) target and re-fetches the user list.
//
// current is the list the viewer last saw. It is patched locally only to
// cover a failed re-fetch after a successful call; a successful re-fetch
// always wins. When the call itself fails current is returned unchanged.
func (s *FeedService) Follow(ctx context.Context, sess *domainauth.Session, target model.ID, follow bool, current []model.User) ([]UserView, error) {
	actor := domainauth.UserID(sess)
	if !domainauth.IsLoggedIn(sess) {
		return AnnotateUsers(current, actor), apperrors.Unauthorized("Please log in to continue")
	}

	token := domainauth.Token(sess)
	var err error
	if follow {
		err = s.api.FollowUser(ctx, target, token)
	} else {
		err = s.api.UnfollowUser(ctx, target, token)
	}
	if err != nil {
		return AnnotateUsers(feed.Others(current, actor), actor), err
	}

	patched := feed.ApplyFollowPatch(current, target, actor, follow)
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return AnnotateUsers(feed.Others(patched, actor), actor), err
	}
	return AnnotateUsers(feed.Others(users, actor), actor), nil
}

// AnnotatePosts marks each post with the viewer's reactions, ownership and
// bookmark state.
func AnnotatePosts(posts []model.Post, viewer model.ID, marks bookmark.Set) []PostView {
	out := make([]PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostView{
			Post:     p,
			Liked:    p.LikedBy(viewer),
			Disliked: p.DislikedBy(viewer),
			Owned:    p.OwnedBy(viewer),
			Bookmark: marks.StateOf(p.ID),
		})
	}
	return out
}

// AnnotateUsers marks each user with whether viewer follows them.
func AnnotateUsers(users []model.User, viewer model.ID) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, UserView{User: u, Following: u.IsFollowedBy(viewer)})
	}
	return out
}
