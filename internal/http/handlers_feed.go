package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/gigglit/gigglit-web/internal/domain/auth"
	"github.com/gigglit/gigglit-web/internal/domain/feed"
	"github.com/gigglit/gigglit-web/internal/domain/model"
	apperrors "github.com/gigglit/gigglit-web/internal/errors"
)

// SortOption is one entry of the home page sort selector.
type SortOption struct {
	Value feed.SortCriteria
	Label string
}

//nolint:gochecknoglobals // static read-only list
var sortOptions = []SortOption{
	{Value: feed.SortNone, Label: "None"},
	{Value: feed.SortMostLikes, Label: "Most liked"},
	{Value: feed.SortMostDislikes, Label: "Most disliked"},
}

// Home renders the feed. GET / (q, sort).
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	sort := feed.ParseSort(r.URL.Query().Get("sort"))

	home, err := h.Feed.Home(r.Context(), GetSessionFromContext(r.Context()), q, sort)
	if err != nil && h.endRejectedSession(w, r, err) {
		return
	}

	data := h.pageData(w, r, PageMeta{PageTitle: "Home", CurrentPage: PageHome}).
		With("Feed", home).
		With("SortOptions", sortOptions)
	if err != nil {
		data.WithError(apperrors.UserMessage(err))
	}
	h.renderPage(w, r, data.Build())
}

// Follow follows the user in the path. POST /users/{id}/follow.
func (h *UIHandlers) Follow(w http.ResponseWriter, r *http.Request) {
	h.setFollow(w, r, true)
}

// Unfollow stops following the user in the path. POST /users/{id}/unfollow.
func (h *UIHandlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	h.setFollow(w, r, false)
}

// setFollow changes the follow relation. A successful call answers with the
// re-fetched user list. On failure only the target's row is re-rendered:
// unchanged when the call failed, patched when only the re-fetch did.
// The row the browser showed travels in the form as name and following.
func (h *UIHandlers) setFollow(w http.ResponseWriter, r *http.Request, follow bool) {
	target := model.CanonicalID(r.PathValue("id"))
	if target.IsZero() {
		h.NotFound(w, r)
		return
	}

	sess := GetSessionFromContext(r.Context())
	users, err := h.Feed.Follow(r.Context(), sess, target, follow, shownUserRow(r, target, domainauth.UserID(sess)))
	if !IsHTMX(r) {
		if err != nil {
			h.failAndRedirectBack(w, r, err, "/")
			return
		}
		redirectBack(w, r, "/")
		return
	}

	if err == nil {
		w.Header().Set("HX-Retarget", "#user-list")
		w.Header().Set("HX-Reswap", "outerHTML")
		h.renderFragment(w, r, "user-list", map[string]any{
			"Users":     users,
			"CSRFToken": GetCSRFToken(r),
		})
		return
	}

	if h.endRejectedSession(w, r, err) {
		return
	}
	triggerToast(w, apperrors.UserMessage(err), FlashError)
	if len(users) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.renderFragment(w, r, "user-row", map[string]any{
		"User":      users[0],
		"CSRFToken": GetCSRFToken(r),
	})
}

func shownUserRow(r *http.Request, target, viewer model.ID) []model.User {
	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		return nil
	}
	u := model.User{ID: target, Name: name}
	if r.PostFormValue("following") == "true" && !viewer.IsZero() {
		u.Followers = []model.ID{viewer}
	}
	return []model.User{u}
}
