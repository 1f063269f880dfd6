package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gigglit/gigglit-web/internal/domain/model"
)

// BookmarkShape selects how FakeBackend encodes GET /bookmarks.
type BookmarkShape int

const (
	// BookmarkPosts returns a bare array of embedded posts.
	BookmarkPosts BookmarkShape = iota
	// BookmarkWrapped returns {"bookmarks": [posts...]}.
	BookmarkWrapped
	// BookmarkObjectIDs returns [{"$oid": "..."}...].
	BookmarkObjectIDs
)

// RecordedRequest is a request observed by FakeBackend.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          string
}

type fakeFailure struct {
	status  int
	message string
}

type fakeAccount struct {
	user     model.User
	password string
}

// FakeBackend is an in-process stand-in for the Gigglit REST backend.
// It implements enough server-side behavior (tokens, admin checks, like and
// bookmark toggles) for client, service and HTTP tests.
type FakeBackend struct {
	Server *httptest.Server

	mu        sync.Mutex
	seq       int
	accounts  []*fakeAccount
	topics    []model.Topic
	posts     []model.Post
	bookmarks map[model.ID][]model.ID
	requests  []RecordedRequest
	failures  map[string]fakeFailure
	shape     BookmarkShape
	tokenFunc func(model.User) string
	now       func() time.Time
}

// NewFakeBackend starts a FakeBackend and registers its shutdown on t.
func NewFakeBackend(t interface {
	TestingTB
	Cleanup(func())
}) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		bookmarks: make(map[model.ID][]model.ID),
		failures:  make(map[string]fakeFailure),
		tokenFunc: func(u model.User) string { return "tok-" + u.ID.String() },
		now:       func() time.Time { return TestTime() },
	}
	fb.Server = httptest.NewServer(fb.routes())
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL returns the base URL of the fake.
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// SetBookmarkShape changes the GET /bookmarks encoding.
func (fb *FakeBackend) SetBookmarkShape(shape BookmarkShape) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.shape = shape
}

// SetTokenFunc overrides how bearer tokens are minted on login and signup.
func (fb *FakeBackend) SetTokenFunc(fn func(model.User) string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.tokenFunc = fn
}

// FailNext makes the next request matching method and path fail with status.
// An empty message yields a body without an "error" field.
func (fb *FakeBackend) FailNext(method, path string, status int, message string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[method+" "+path] = fakeFailure{status: status, message: message}
}

func (fb *FakeBackend) nextID() model.ID {
	fb.seq++
	return model.ID(fmt.Sprintf("%024x", fb.seq))
}

// AddUser registers an account and returns it with its token.
func (fb *FakeBackend) AddUser(name, email, password string, role model.Role) model.User {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.addUserLocked(name, email, password, role)
}

func (fb *FakeBackend) addUserLocked(name, email, password string, role model.Role) model.User {
	if role == "" {
		role = model.RoleUser
	}
	u := model.User{ID: fb.nextID(), Name: name, Email: email, Role: role, Followers: []model.ID{}}
	fb.accounts = append(fb.accounts, &fakeAccount{user: u, password: password})
	u.Token = fb.tokenFunc(u)
	return u
}

// AddTopic registers a topic.
func (fb *FakeBackend) AddTopic(name string) model.Topic {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	t := model.Topic{ID: fb.nextID(), Name: name}
	fb.topics = append(fb.topics, t)
	return t
}

// AddPost registers a post authored by author under topic.
func (fb *FakeBackend) AddPost(author model.User, topic model.Topic, title, description string) model.Post {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	p := model.Post{
		ID:          fb.nextID(),
		Title:       title,
		Description: description,
		User:        model.UserRef{ID: author.ID, Name: author.Name},
		Topic:       model.TopicRef{ID: topic.ID, Name: topic.Name},
		Likes:       []model.ID{},
		Dislikes:    []model.ID{},
		CreatedAt:   fb.now().Add(time.Duration(fb.seq) * time.Minute),
	}
	fb.posts = append(fb.posts, p)
	return p
}

// Posts returns a snapshot of stored posts.
func (fb *FakeBackend) Posts() []model.Post {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return slices.Clone(fb.posts)
}

// Topics returns a snapshot of stored topics.
func (fb *FakeBackend) Topics() []model.Topic {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return slices.Clone(fb.topics)
}

// User returns the stored account for id.
func (fb *FakeBackend) User(id model.ID) (model.User, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if acc := fb.accountByID(id); acc != nil {
		return acc.user, true
	}
	return model.User{}, false
}

// BookmarkIDs returns the stored bookmark list for userID.
func (fb *FakeBackend) BookmarkIDs(userID model.ID) []model.ID {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return slices.Clone(fb.bookmarks[userID])
}

// Requests returns every request received so far.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return slices.Clone(fb.requests)
}

// AuthenticatedRequests returns requests that carried an Authorization header.
func (fb *FakeBackend) AuthenticatedRequests() []RecordedRequest {
	var out []RecordedRequest
	for _, r := range fb.Requests() {
		if r.Authorization != "" {
			out = append(out, r)
		}
	}
	return out
}

// ResetRequests clears the request log.
func (fb *FakeBackend) ResetRequests() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.requests = nil
}

func (fb *FakeBackend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /user/login", fb.handleLogin)
	mux.HandleFunc("POST /user/signup", fb.handleSignup)
	mux.HandleFunc("GET /user", fb.authed(fb.handleListUsers))
	mux.HandleFunc("PUT /user/follow/{id}", fb.authed(fb.handleFollow(true)))
	mux.HandleFunc("PUT /user/unfollow/{id}", fb.authed(fb.handleFollow(false)))

	mux.HandleFunc("GET /posts", fb.handleListPosts)
	mux.HandleFunc("GET /posts/{id}", fb.handleGetPost)
	mux.HandleFunc("GET /posts/{id}/user", fb.handlePostsByUser)
	mux.HandleFunc("POST /posts", fb.authed(fb.handleCreatePost))
	mux.HandleFunc("PUT /posts/{id}", fb.authed(fb.handleUpdatePost))
	mux.HandleFunc("DELETE /posts/{id}", fb.authed(fb.handleDeletePost))
	mux.HandleFunc("PUT /posts/{id}/like", fb.authed(fb.handleReaction(true)))
	mux.HandleFunc("PUT /posts/{id}/dislike", fb.authed(fb.handleReaction(false)))

	mux.HandleFunc("GET /topics", fb.handleListTopics)
	mux.HandleFunc("GET /topics/{id}", fb.handleGetTopic)
	mux.HandleFunc("POST /topics", fb.admin(fb.handleCreateTopic))
	mux.HandleFunc("PUT /topics/{id}", fb.admin(fb.handleUpdateTopic))
	mux.HandleFunc("DELETE /topics/{id}", fb.admin(fb.handleDeleteTopic))

	mux.HandleFunc("GET /bookmarks", fb.authed(fb.handleListBookmarks))
	mux.HandleFunc("POST /bookmarks/{postId}", fb.authed(fb.handleToggleBookmark))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
		}
		fb.mu.Lock()
		fb.requests = append(fb.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		key := r.Method + " " + r.URL.Path
		failure, failing := fb.failures[key]
		if failing {
			delete(fb.failures, key)
		}
		fb.mu.Unlock()

		if failing {
			if failure.message == "" {
				writeFakeJSON(w, failure.status, map[string]string{})
			} else {
				writeFakeError(w, failure.status, failure.message)
			}
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		mux.ServeHTTP(w, r)
	})
}

type authedHandler func(w http.ResponseWriter, r *http.Request, actor model.User)

func (fb *FakeBackend) authed(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := fb.actor(r)
		if !ok {
			writeFakeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, actor)
	}
}

func (fb *FakeBackend) admin(next authedHandler) http.HandlerFunc {
	return fb.authed(func(w http.ResponseWriter, r *http.Request, actor model.User) {
		if actor.Role != model.RoleAdmin {
			writeFakeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r, actor)
	})
}

func (fb *FakeBackend) actor(r *http.Request) (model.User, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return model.User{}, false
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, acc := range fb.accounts {
		if fb.tokenFunc(acc.user) == token {
			return acc.user, true
		}
	}
	return model.User{}, false
}

func (fb *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeFakeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, acc := range fb.accounts {
		if strings.EqualFold(acc.user.Email, in.Email) && acc.password == in.Password {
			u := acc.user
			u.Token = fb.tokenFunc(u)
			writeFakeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeFakeError(w, http.StatusBadRequest, "Invalid email or password")
}

func (fb *FakeBackend) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Email == "" || in.Password == "" {
		writeFakeError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, acc := range fb.accounts {
		if strings.EqualFold(acc.user.Email, in.Email) {
			writeFakeError(w, http.StatusBadRequest, "User already exists")
			return
		}
	}
	writeFakeJSON(w, http.StatusCreated, fb.addUserLocked(in.Name, in.Email, in.Password, model.RoleUser))
}

func (fb *FakeBackend) handleListUsers(w http.ResponseWriter, _ *http.Request, _ model.User) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	users := make([]model.User, 0, len(fb.accounts))
	for _, acc := range fb.accounts {
		users = append(users, acc.user)
	}
	writeFakeJSON(w, http.StatusOK, users)
}

func (fb *FakeBackend) handleFollow(follow bool) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, actor model.User) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		target := fb.accountByID(model.ID(r.PathValue("id")))
		if target == nil {
			writeFakeError(w, http.StatusNotFound, "User not found")
			return
		}
		target.user.Followers = toggleMember(target.user.Followers, actor.ID, follow)
		writeFakeJSON(w, http.StatusOK, target.user)
	}
}

func (fb *FakeBackend) handleListPosts(w http.ResponseWriter, _ *http.Request) {
	writeFakeJSON(w, http.StatusOK, fb.Posts())
}

func (fb *FakeBackend) handleGetPost(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	idx := fb.postIndex(model.ID(r.PathValue("id")))
	if idx < 0 {
		writeFakeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeFakeJSON(w, http.StatusOK, fb.posts[idx])
}

// handlePostsByUser returns the user's own posts plus posts by users they follow.
func (fb *FakeBackend) handlePostsByUser(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	userID := model.ID(r.PathValue("id"))
	authors := map[model.ID]bool{userID: true}
	for _, acc := range fb.accounts {
		if acc.user.IsFollowedBy(userID) {
			authors[acc.user.ID] = true
		}
	}
	out := []model.Post{}
	for _, p := range fb.posts {
		if authors[p.User.ID] {
			out = append(out, p)
		}
	}
	writeFakeJSON(w, http.StatusOK, out)
}

func (fb *FakeBackend) handleCreatePost(w http.ResponseWriter, r *http.Request, actor model.User) {
	in, ok := decodePostInput(w, r)
	if !ok {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	p := model.Post{
		ID:          fb.nextID(),
		Title:       in.Title,
		Description: in.Description,
		User:        model.UserRef{ID: actor.ID, Name: actor.Name},
		Topic:       fb.topicRef(in.Topic),
		Likes:       []model.ID{},
		Dislikes:    []model.ID{},
		CreatedAt:   fb.now(),
	}
	fb.posts = append(fb.posts, p)
	writeFakeJSON(w, http.StatusCreated, p)
}

func (fb *FakeBackend) handleUpdatePost(w http.ResponseWriter, r *http.Request, actor model.User) {
	in, ok := decodePostInput(w, r)
	if !ok {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	idx := fb.postIndex(model.ID(r.PathValue("id")))
	if idx < 0 {
		writeFakeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if fb.posts[idx].User.ID != actor.ID {
		writeFakeError(w, http.StatusForbidden, "You can only edit your own posts")
		return
	}
	fb.posts[idx].Title = in.Title
	fb.posts[idx].Description = in.Description
	fb.posts[idx].Topic = fb.topicRef(in.Topic)
	writeFakeJSON(w, http.StatusOK, fb.posts[idx])
}

func (fb *FakeBackend) handleDeletePost(w http.ResponseWriter, r *http.Request, actor model.User) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	idx := fb.postIndex(model.ID(r.PathValue("id")))
	if idx < 0 {
		writeFakeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if fb.posts[idx].User.ID != actor.ID && actor.Role != model.RoleAdmin {
		writeFakeError(w, http.StatusForbidden, "You can only delete your own posts")
		return
	}
	fb.posts = slices.Delete(fb.posts, idx, idx+1)
	writeFakeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

// handleReaction toggles like or dislike; adding one removes the other.
func (fb *FakeBackend) handleReaction(like bool) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, actor model.User) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		idx := fb.postIndex(model.ID(r.PathValue("id")))
		if idx < 0 {
			writeFakeError(w, http.StatusNotFound, "Post not found")
			return
		}
		p := &fb.posts[idx]
		if like {
			p.Likes = toggleMember(p.Likes, actor.ID, !slices.Contains(p.Likes, actor.ID))
			p.Dislikes = toggleMember(p.Dislikes, actor.ID, false)
		} else {
			p.Dislikes = toggleMember(p.Dislikes, actor.ID, !slices.Contains(p.Dislikes, actor.ID))
			p.Likes = toggleMember(p.Likes, actor.ID, false)
		}
		writeFakeJSON(w, http.StatusOK, *p)
	}
}

func (fb *FakeBackend) handleListTopics(w http.ResponseWriter, _ *http.Request) {
	writeFakeJSON(w, http.StatusOK, fb.Topics())
}

func (fb *FakeBackend) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	idx := fb.topicIndex(model.ID(r.PathValue("id")))
	if idx < 0 {
		writeFakeError(w, http.StatusNotFound, "Topic not found")
		return
	}
	writeFakeJSON(w, http.StatusOK, fb.topics[idx])
}

func (fb *FakeBackend) handleCreateTopic(w http.ResponseWriter, r *http.Request, _ model.User) {
	name, ok := decodeTopicName(w, r)
	if !ok {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	t := model.Topic{ID: fb.nextID(), Name: name}
	fb.topics = append(fb.topics, t)
	writeFakeJSON(w, http.StatusCreated, t)
}

func (fb *FakeBackend) handleUpdateTopic(w http.ResponseWriter, r *http.Request, _ model.User) {
	name, ok := decodeTopicName(w, r)
	if !ok {
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	idx := fb.topicIndex(model.ID(r.PathValue("id")))
	if idx < 0 {
		writeFakeError(w, http.StatusNotFound, "Topic not found")
		return
	}
	fb.topics[idx].Name = name
	writeFakeJSON(w, http.StatusOK, fb.topics[idx])
}

func (fb *FakeBackend) handleDeleteTopic(w http.ResponseWriter, r *http.Request, _ model.User) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	idx := fb.topicIndex(model.ID(r.PathValue("id")))
	if idx < 0 {
		writeFakeError(w, http.StatusNotFound, "Topic not found")
		return
	}
	fb.topics = slices.Delete(fb.topics, idx, idx+1)
	writeFakeJSON(w, http.StatusOK, map[string]string{"message": "Topic deleted"})
}

func (fb *FakeBackend) handleListBookmarks(w http.ResponseWriter, _ *http.Request, actor model.User) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	ids := fb.bookmarks[actor.ID]

	switch fb.shape {
	case BookmarkObjectIDs:
		out := make([]map[string]string, 0, len(ids))
		for _, id := range ids {
			out = append(out, map[string]string{"$oid": strings.ToUpper(id.String())})
		}
		writeFakeJSON(w, http.StatusOK, out)
	case BookmarkWrapped:
		writeFakeJSON(w, http.StatusOK, map[string]any{"bookmarks": fb.postsByIDs(ids)})
	default:
		writeFakeJSON(w, http.StatusOK, fb.postsByIDs(ids))
	}
}

// handleToggleBookmark flips membership. The body it returns is intentionally
// unrelated to the new state.
func (fb *FakeBackend) handleToggleBookmark(w http.ResponseWriter, r *http.Request, actor model.User) {
	var in struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.UserID == "" {
		writeFakeError(w, http.StatusBadRequest, "userId is required")
		return
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	postID := model.ID(r.PathValue("postId"))
	if fb.postIndex(postID) < 0 {
		writeFakeError(w, http.StatusNotFound, "Post not found")
		return
	}
	current := fb.bookmarks[actor.ID]
	fb.bookmarks[actor.ID] = toggleMember(current, postID, !slices.Contains(current, postID))
	writeFakeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

func (fb *FakeBackend) accountByID(id model.ID) *fakeAccount {
	for _, acc := range fb.accounts {
		if acc.user.ID == id {
			return acc
		}
	}
	return nil
}

func (fb *FakeBackend) postIndex(id model.ID) int {
	return slices.IndexFunc(fb.posts, func(p model.Post) bool { return p.ID == id })
}

func (fb *FakeBackend) topicIndex(id model.ID) int {
	return slices.IndexFunc(fb.topics, func(t model.Topic) bool { return t.ID == id })
}

func (fb *FakeBackend) topicRef(id model.ID) model.TopicRef {
	if idx := fb.topicIndex(id); idx >= 0 {
		return model.TopicRef{ID: fb.topics[idx].ID, Name: fb.topics[idx].Name}
	}
	return model.TopicRef{ID: id}
}

func (fb *FakeBackend) postsByIDs(ids []model.ID) []model.Post {
	out := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		if idx := fb.postIndex(id); idx >= 0 {
			out = append(out, fb.posts[idx])
		}
	}
	return out
}

func decodePostInput(w http.ResponseWriter, r *http.Request) (model.PostInput, bool) {
	var in model.PostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" || in.Description == "" || in.Topic == "" {
		writeFakeError(w, http.StatusBadRequest, "Title, description and topic are required")
		return in, false
	}
	return in, true
}

func decodeTopicName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var in model.TopicInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Name) == "" {
		writeFakeError(w, http.StatusBadRequest, "Topic name is required")
		return "", false
	}
	return in.Name, true
}

func toggleMember(ids []model.ID, id model.ID, present bool) []model.ID {
	out := slices.DeleteFunc(slices.Clone(ids), func(v model.ID) bool { return v == id })
	if present {
		out = append(out, id)
	}
	if out == nil {
		out = []model.ID{}
	}
	return out
}

func writeFakeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFakeError(w http.ResponseWriter, status int, msg string) {
	writeFakeJSON(w, status, map[string]string{"error": msg})
}
