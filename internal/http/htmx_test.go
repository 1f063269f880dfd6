package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTMX_RequestDetection(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.Header.Set("Hx-Request", "true")
	r.Header.Set("Hx-Boosted", "true")
	if !IsHTMX(r) {
		t.Fatal("expected IsHTMX true")
	}
	if !IsBoosted(r) {
		t.Fatal("expected IsBoosted true")
	}

	r2 := httptest.NewRequest(http.MethodGet, "/x", nil)
	if IsHTMX(r2) || IsBoosted(r2) {
		t.Fatal("expected defaults to false")
	}
}

func TestHTMX_WantsPartial(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	if WantsPartial(r) {
		t.Fatal("plain request should get the full page")
	}
	r.Header.Set("Hx-Request", "true")
	if !WantsPartial(r) {
		t.Fatal("htmx request should want partial")
	}
	r.Header.Set("Hx-Boosted", "true")
	if WantsPartial(r) {
		t.Fatal("boosted navigation needs the layout")
	}
}

func TestHTMX_ResponseHeaders_Setters(t *testing.T) {
	rr := httptest.NewRecorder()
	SetHXRedirect(rr, "/login")
	SetHXPushURL(rr, "/topics/new")
	SetHXTrigger(rr, "saved", map[string]any{"id": "123"})
	res := rr.Result()
	t.Cleanup(func() { _ = res.Body.Close() })
	if got := res.Header.Get("Hx-Redirect"); got != "/login" {
		t.Fatalf("HX-Redirect: %q", got)
	}
	if got := res.Header.Get("Hx-Push-Url"); got != "/topics/new" {
		t.Fatalf("HX-Push-Url: %q", got)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(res.Header.Get("Hx-Trigger")), &payload); err != nil {
		t.Fatalf("unmarshal trigger: %v", err)
	}
	if _, ok := payload["saved"]; !ok {
		t.Fatalf("expected 'saved' key in HX-Trigger: %v", payload)
	}
}

func TestHTMX_TriggerWithoutPayload(t *testing.T) {
	rr := httptest.NewRecorder()
	SetHXTrigger(rr, "refresh", nil)
	if got := rr.Header().Get("Hx-Trigger"); got != `{"refresh":true}` {
		t.Fatalf("HX-Trigger: %q", got)
	}
}

func TestHTMX_TriggerToast(t *testing.T) {
	rr := httptest.NewRecorder()
	triggerToast(rr, "Post not found", FlashError)

	var payload map[string]map[string]string
	if err := json.Unmarshal([]byte(rr.Header().Get("Hx-Trigger")), &payload); err != nil {
		t.Fatalf("unmarshal trigger: %v", err)
	}
	toast := payload["showToast"]
	if toast["message"] != "Post not found" || toast["type"] != "error" {
		t.Fatalf("unexpected toast payload: %v", toast)
	}
}

func TestHTMXResponse_Redirect(t *testing.T) {
	rr := httptest.NewRecorder()
	HTMX(rr).Trigger("saved", nil).PushURL("/x").Redirect("/done")

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if got := rr.Header().Get("Hx-Redirect"); got != "/done" {
		t.Fatalf("HX-Redirect: %q", got)
	}
	if rr.Header().Get("Hx-Trigger") == "" || rr.Header().Get("Hx-Push-Url") != "/x" {
		t.Fatal("chained headers missing")
	}
}

func TestRedirect_PlainAndHTMX(t *testing.T) {
	plain := httptest.NewRecorder()
	redirect(plain, httptest.NewRequest(http.MethodPost, "/x", nil), "/next")
	if plain.Code != http.StatusSeeOther || plain.Header().Get("Location") != "/next" {
		t.Fatalf("plain redirect: %d %q", plain.Code, plain.Header().Get("Location"))
	}

	hx := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/x", nil)
	r.Header.Set("Hx-Request", "true")
	redirect(hx, r, "/next")
	if hx.Code != http.StatusNoContent || hx.Header().Get("Hx-Redirect") != "/next" {
		t.Fatalf("htmx redirect: %d %q", hx.Code, hx.Header().Get("Hx-Redirect"))
	}
}

func TestRedirectBack(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{name: "fallback", expected: "/fallback"},
		{name: "referer", headers: map[string]string{"Referer": "http://example.com/bookmark?x=1"}, expected: "/bookmark?x=1"},
		{name: "htmx current url wins", headers: map[string]string{
			"Hx-Current-Url": "http://example.com/adminPosts",
			"Referer":        "http://example.com/bookmark",
		}, expected: "/adminPosts"},
		{name: "scheme relative referer rejected", headers: map[string]string{"Referer": "//evil.example/x"}, expected: "/fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/posts/1/like", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			redirectBack(rr, r, "/fallback")
			if got := rr.Header().Get("Location"); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
