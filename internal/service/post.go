package service

import (
	"context"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/ports"
	"golang.org/x/sync/errgroup"
)

// PostServiceOptions groups dependencies for PostService.
type PostServiceOptions struct {
	API ports.GigglitAPI
}

// PostService handles post authoring, reactions and the admin post list.
type PostService struct {
	api ports.GigglitAPI
}

// NewPostService constructs a new PostService.
func NewPostService(opts PostServiceOptions) *PostService {
	return &PostService{api: opts.API}
}

// PostForm is what the create/edit page needs: the post (zero for new) and
// the topic choices.
type PostForm struct {
	Post   model.Post
	Topics []model.Topic
}

var errLoginRequired = apperrors.Unauthorized("Please log in to continue")

// NewForm loads the topic choices for a new post.
func (s *PostService) NewForm(ctx context.Context) (PostForm, error) {
	topics, err := s.api.ListTopics(ctx)
	return PostForm{Topics: topics}, err
}

// EditForm loads the post and topic choices concurrently. Only the author
// may edit; anyone else gets a Forbidden error.
func (s *PostService) EditForm(ctx context.Context, sess *domainauth.Session, id model.ID) (PostForm, error) {
	if !domainauth.IsLoggedIn(sess) {
		return PostForm{}, errLoginRequired
	}

	var (
		form PostForm
		g    errgroup.Group
	)
	g.Go(func() error {
		var err error
		form.Post, err = s.api.GetPost(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		form.Topics, err = s.api.ListTopics(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return form, err
	}

	if !form.Post.OwnedBy(domainauth.UserID(sess)) {
		return form, apperrors.Forbidden("You can only edit your own posts")
	}
	return form, nil
}

// Create publishes a post as the session's user.
func (s *PostService) Create(ctx context.Context, sess *domainauth.Session, in model.PostInput) (model.Post, error) {
	if !domainauth.IsLoggedIn(sess) {
		return model.Post{}, errLoginRequired
	}
	return s.api.CreatePost(ctx, in, domainauth.Token(sess))
}

// Update replaces a post's content.
func (s *PostService) Update(ctx context.Context, sess *domainauth.Session, id model.ID, in model.PostInput) (model.Post, error) {
	if !domainauth.IsLoggedIn(sess) {
		return model.Post{}, errLoginRequired
	}
	return s.api.UpdatePost(ctx, id, in, domainauth.Token(sess))
}

// Delete removes a post and returns current without it. On failure current
// is returned unchanged with the error, so a post that is already gone
// stays listed until the next fetch.
func (s *PostService) Delete(ctx context.Context, sess *domainauth.Session, id model.ID, current []model.Post) ([]model.Post, error) {
	if !domainauth.IsLoggedIn(sess) {
		return current, errLoginRequired
	}
	if err := s.api.DeletePost(ctx, id, domainauth.Token(sess)); err != nil {
		return current, err
	}
	return model.RemovePost(current, id), nil
}

// React toggles the viewer's like (or dislike) and returns the post as the
// backend now has it.
func (s *PostService) React(ctx context.Context, sess *domainauth.Session, id model.ID, like bool) (model.Post, error) {
	if !domainauth.IsLoggedIn(sess) {
		return model.Post{}, errLoginRequired
	}

	token := domainauth.Token(sess)
	var err error
	if like {
		err = s.api.LikePost(ctx, id, token)
	} else {
		err = s.api.DislikePost(ctx, id, token)
	}
	if err != nil {
		return model.Post{}, err
	}
	return s.api.GetPost(ctx, id)
}

// All returns every post for the admin list.
func (s *PostService) All(ctx context.Context) ([]model.Post, error) {
	return s.api.ListPosts(ctx)
}
