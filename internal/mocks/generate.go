// Package mocks provides gomock implementations of the web tier's ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockGigglitAPI(ctrl)
//	api.EXPECT().ListTopics(gomock.Any()).Return(topics, nil)
package mocks

// Backend client surface: users, posts, topics and bookmarks.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=gigglit_api_mock.go github.com/gigglit/gigglit-web/internal/ports GigglitAPI

// Session persistence, used to exercise store failures in the session service.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/gigglit/gigglit-web/internal/ports SessionStore
