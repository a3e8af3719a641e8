package fifteenfive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Session{
		BaseURL:   srv.URL,
		SessionID: "test-session",
		CSRFToken: "test-csrf",
	})
}

func TestUsers_SendsSessionCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Cookie"); got != "sessionid=test-session" {
			t.Errorf("Cookie = %q", got)
		}
		if r.URL.Path != "/account/company/users/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("include_active_only") != "false" {
			t.Error("expected include_active_only=false")
		}
		fmt.Fprint(w, `[{"id":1,"full_name":"Daryl Handley","is_active":true},{"id":2,"full_name":"Amy Chen","title":"Engineer","is_active":false}]`)
	}))
	defer srv.Close()

	users, err := newTestClient(srv).Users(context.Background())
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].FullName != "Daryl Handley" || users[1].Title == nil || *users[1].Title != "Engineer" {
		t.Errorf("users = %+v", users)
	}
}

func TestObjectives_PaginatesUpToLimit(t *testing.T) {
	var pagesServed []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pagesServed = append(pagesServed, page)
		if got := r.URL.Query().Get("state"); got != "current" {
			t.Errorf("state = %q", got)
		}

		pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		results := make([]objective.Objective, pageSize)
		for i := range results {
			results[i] = objective.Objective{ID: (page-1)*pageSize + i + 1}
		}
		next := "more"
		_ = json.NewEncoder(w).Encode(objective.Page{Count: 1000, Next: &next, Results: results})
	}))
	defer srv.Close()

	objectives, err := newTestClient(srv).Objectives(context.Background(), 75)
	if err != nil {
		t.Fatalf("Objectives: %v", err)
	}
	if len(objectives) != 75 {
		t.Fatalf("got %d objectives, want 75", len(objectives))
	}
	if len(pagesServed) != 2 {
		t.Errorf("served pages %v, want two pages", pagesServed)
	}
}

func TestObjectives_StopsOnShortPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(objective.Page{
			Count:   3,
			Results: []objective.Objective{{ID: 1}, {ID: 2}, {ID: 3}},
		})
	}))
	defer srv.Close()

	objectives, err := newTestClient(srv).Objectives(context.Background(), 50)
	if err != nil {
		t.Fatalf("Objectives: %v", err)
	}
	if len(objectives) != 3 {
		t.Errorf("got %d objectives, want 3", len(objectives))
	}
}

func TestObjectivesByUser_PaginatesToExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user"); got != "42" {
			t.Errorf("user filter = %q", got)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 1 {
			next := "page2"
			_ = json.NewEncoder(w).Encode(objective.Page{Next: &next, Results: []objective.Objective{{ID: 1}}})
			return
		}
		_ = json.NewEncoder(w).Encode(objective.Page{Results: []objective.Objective{{ID: 2}}})
	}))
	defer srv.Close()

	objectives, err := newTestClient(srv).ObjectivesByUser(context.Background(), 42)
	if err != nil {
		t.Fatalf("ObjectivesByUser: %v", err)
	}
	if len(objectives) != 2 {
		t.Errorf("got %d objectives, want 2", len(objectives))
	}
}

func TestObjective_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "CSRF verification failed")
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Objective(context.Background(), 99)
	var remote *objective.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", remote.StatusCode)
	}
	if remote.Body != "CSRF verification failed" {
		t.Errorf("Body = %q", remote.Body)
	}
}

func TestCreateObjective_ExtractsIDFromRedirect(t *testing.T) {
	var received url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("/objectives/create/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-CSRFToken"); got != "test-csrf" {
			t.Errorf("X-CSRFToken = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := r.Header.Get("Cookie"); got != "ff_csrf_token=test-csrf; sessionid=test-session;" {
			t.Errorf("Cookie = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		received = r.PostForm
		http.Redirect(w, r, "/objectives/details/7654321/", http.StatusFound)
	})
	mux.HandleFunc("/objectives/details/7654321/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "detail page")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	form := url.Values{}
	form.Set("description", "Ship the thing")

	id, err := newTestClient(srv).CreateObjective(context.Background(), form)
	if err != nil {
		t.Fatalf("CreateObjective: %v", err)
	}
	if id != 7654321 {
		t.Errorf("id = %d, want 7654321", id)
	}
	if got := received.Get("csrfmiddlewaretoken"); got != "test-csrf" {
		t.Errorf("csrfmiddlewaretoken = %q", got)
	}
	if got := received.Get("description"); got != "Ship the thing" {
		t.Errorf("description = %q", got)
	}
}

func TestCreateObjective_UnconfirmedID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/objectives/create/", func(w http.ResponseWriter, r *http.Request) {
		// Success, but the redirect lands somewhere without an ID.
		http.Redirect(w, r, "/home/", http.StatusFound)
	})
	mux.HandleFunc("/home/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "dashboard")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestClient(srv).CreateObjective(context.Background(), url.Values{})
	if !errors.Is(err, objective.ErrCreatedIDUnknown) {
		t.Fatalf("expected ErrCreatedIDUnknown, got %v", err)
	}
	var unknownID *objective.CreatedUnknownIDError
	if !errors.As(err, &unknownID) {
		t.Fatal("expected CreatedUnknownIDError")
	}
}

func TestCreateObjective_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "form invalid")
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateObjective(context.Background(), url.Values{})
	var remote *objective.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if errors.Is(err, objective.ErrCreatedIDUnknown) {
		t.Error("a rejected create must not look like an ambiguous success")
	}
}

func TestUpdateKeyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/objectives/ajax/update-key-result/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.PostForm.Get("key_result_id"); got != "555" {
			t.Errorf("key_result_id = %q", got)
		}
		if got := r.PostForm.Get("value"); got != "7" {
			t.Errorf("value = %q", got)
		}
	}))
	defer srv.Close()

	if err := newTestClient(srv).UpdateKeyResult(context.Background(), 555, 7); err != nil {
		t.Fatalf("UpdateKeyResult: %v", err)
	}
}

func TestUpdateKeyResult_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "boom")
	}))
	defer srv.Close()

	err := newTestClient(srv).UpdateKeyResult(context.Background(), 1, 1)
	var remote *objective.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if remote.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", remote.StatusCode)
	}
}

func TestUpdateKeyResult_TruncatedBodySurfacesReadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declare more bytes than are sent so the client's body read fails.
		w.Header().Set("Content-Length", "64")
		fmt.Fprint(w, "short")
	}))
	defer srv.Close()

	err := newTestClient(srv).UpdateKeyResult(context.Background(), 1, 1)
	if err == nil {
		t.Fatal("expected a body read error")
	}
	var remote *objective.RemoteError
	if errors.As(err, &remote) {
		t.Fatalf("read failure must not masquerade as a remote status error: %v", err)
	}
}

func TestSetSession_HotReload(t *testing.T) {
	var lastCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastCookie = r.Header.Get("Cookie")
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	c := newTestClient(srv)
	if _, err := c.Users(context.Background()); err != nil {
		t.Fatal(err)
	}
	if lastCookie != "sessionid=test-session" {
		t.Fatalf("Cookie = %q", lastCookie)
	}

	c.SetSession(Session{BaseURL: srv.URL, SessionID: "rotated", CSRFToken: "rotated-csrf"})
	if _, err := c.Users(context.Background()); err != nil {
		t.Fatal(err)
	}
	if lastCookie != "sessionid=rotated" {
		t.Errorf("Cookie after SetSession = %q", lastCookie)
	}
}
