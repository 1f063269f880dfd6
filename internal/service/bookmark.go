package service

import (
	"context"
	"log/slog"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/bookmark"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/ports"
	"golang.org/x/sync/errgroup"
)

const defaultHydrateConcurrency = 8

// BookmarkBackend is the slice of the backend the bookmark service needs.
type BookmarkBackend interface {
	ports.BookmarkAPI
	GetPost(ctx context.Context, id model.ID) (model.Post, error)
}

// BookmarkServiceOptions groups dependencies for BookmarkService.
type BookmarkServiceOptions struct {
	API    BookmarkBackend
	Logger *slog.Logger
	// HydrateConcurrency bounds parallel GetPost calls for ID-only entries.
	HydrateConcurrency int
}

// BookmarkService derives bookmark membership from the backend's bookmark list.
// Membership is never flipped locally: every toggle is followed by a fetch.
type BookmarkService struct {
	api         BookmarkBackend
	logger      *slog.Logger
	concurrency int
}

// NewBookmarkService constructs a new BookmarkService.
func NewBookmarkService(opts BookmarkServiceOptions) *BookmarkService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	n := opts.HydrateConcurrency
	if n <= 0 {
		n = defaultHydrateConcurrency
	}
	return &BookmarkService{api: opts.API, logger: logger, concurrency: n}
}

// Load fetches the caller's bookmark set. Visitors get an unfetched set and
// no request is made.
func (s *BookmarkService) Load(ctx context.Context, sess *domainauth.Session) (bookmark.Set, error) {
	if !domainauth.IsLoggedIn(sess) {
		return bookmark.Set{}, nil
	}
	posts, err := s.api.Bookmarks(ctx, domainauth.Token(sess))
	if err != nil {
		return bookmark.Set{}, err
	}
	return bookmark.FromPosts(posts), nil
}

// Posts returns the caller's bookmarked posts, fetching full posts for
// entries the backend listed by ID only. Entries that cannot be hydrated
// are kept as ID-only placeholders, except deleted posts which are dropped.
func (s *BookmarkService) Posts(ctx context.Context, sess *domainauth.Session) ([]model.Post, error) {
	if !domainauth.IsLoggedIn(sess) {
		return nil, apperrors.Unauthorized("Please log in to continue")
	}
	posts, err := s.api.Bookmarks(ctx, domainauth.Token(sess))
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts), nil
}

func (s *BookmarkService) hydrate(ctx context.Context, posts []model.Post) []model.Post {
	out := make([]model.Post, len(posts))
	missing := make([]bool, len(posts))
	copy(out, posts)

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range posts {
		if p.IsHydrated() {
			continue
		}
		g.Go(func() error {
			full, err := s.api.GetPost(ctx, p.ID)
			switch {
			case apperrors.IsNotFound(err):
				missing[i] = true
			case err != nil:
				s.logger.DebugContext(ctx, "bookmark hydration failed", "post_id", p.ID.String(), "error", err)
			default:
				out[i] = full
			}
			return nil
		})
	}
	_ = g.Wait()

	kept := out[:0]
	for i, p := range out {
		if !missing[i] {
			kept = append(kept, p)
		}
	}
	return kept
}

// Toggle flips postID's membership and re-fetches the list. If the toggle
// itself fails, prev is returned unchanged with the error. If the toggle
// succeeds but the re-fetch fails, membership is unknown until the next fetch.
func (s *BookmarkService) Toggle(ctx context.Context, sess *domainauth.Session, postID model.ID, prev bookmark.Set) (bookmark.Set, error) {
	if !domainauth.IsLoggedIn(sess) {
		return prev, apperrors.Unauthorized("Please log in to continue")
	}

	if err := s.api.ToggleBookmark(ctx, postID, domainauth.UserID(sess), domainauth.Token(sess)); err != nil {
		return prev, err
	}

	posts, err := s.api.Bookmarks(ctx, domainauth.Token(sess))
	if err != nil {
		return bookmark.Set{}, err
	}
	return bookmark.FromPosts(posts), nil
}
