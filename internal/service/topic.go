package service

import (
	"context"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/ports"
)

// TopicServiceOptions groups dependencies for TopicService.
type TopicServiceOptions struct {
	API ports.TopicAPI
}

// TopicService handles the admin topic pages. The backend enforces the admin
// role; the service only refuses to send a request without one.
type TopicService struct {
	api ports.TopicAPI
}

// NewTopicService constructs a new TopicService.
func NewTopicService(opts TopicServiceOptions) *TopicService {
	return &TopicService{api: opts.API}
}

func requireAdmin(sess *domainauth.Session) error {
	if !domainauth.IsLoggedIn(sess) {
		return errLoginRequired
	}
	if !domainauth.IsAdmin(sess) {
		return apperrors.Forbidden("Admin access required")
	}
	return nil
}

// List returns every topic.
func (s *TopicService) List(ctx context.Context) ([]model.Topic, error) {
	return s.api.ListTopics(ctx)
}

// Get returns a single topic.
func (s *TopicService) Get(ctx context.Context, id model.ID) (model.Topic, error) {
	return s.api.GetTopic(ctx, id)
}

// Create adds a topic.
func (s *TopicService) Create(ctx context.Context, sess *domainauth.Session, in model.TopicInput) (model.Topic, error) {
	if err := requireAdmin(sess); err != nil {
		return model.Topic{}, err
	}
	topic, err := s.api.CreateTopic(ctx, in, domainauth.Token(sess))
	return topic, nameFieldError(err)
}

// Update renames a topic.
func (s *TopicService) Update(ctx context.Context, sess *domainauth.Session, id model.ID, in model.TopicInput) (model.Topic, error) {
	if err := requireAdmin(sess); err != nil {
		return model.Topic{}, err
	}
	topic, err := s.api.UpdateTopic(ctx, id, in, domainauth.Token(sess))
	return topic, nameFieldError(err)
}

// nameFieldError attaches a backend validation rejection to the name input,
// the only field a topic has.
func nameFieldError(err error) error {
	if apperrors.IsValidation(err) && apperrors.GetField(err) == "" {
		return apperrors.ValidationField("name", apperrors.UserMessage(err))
	}
	return err
}

// Delete removes a topic and re-fetches the list. When the delete fails the
// list is still re-fetched so the page reflects the backend.
func (s *TopicService) Delete(ctx context.Context, sess *domainauth.Session, id model.ID) ([]model.Topic, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	delErr := s.api.DeleteTopic(ctx, id, domainauth.Token(sess))
	topics, err := s.api.ListTopics(ctx)
	if delErr != nil {
		return topics, delErr
	}
	return topics, err
}
