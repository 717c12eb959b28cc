package pages

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/db"
	"github.com/ziadkadry99/interview-assistant/internal/session"
)

// recorder is a Navigator that records requests instead of acting on them.
type recorder struct {
	mu   sync.Mutex
	navs []Navigation
}

func (r *recorder) Navigate(_ context.Context, nav Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navs = append(r.navs, nav)
}

func (r *recorder) all() []Navigation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Navigation(nil), r.navs...)
}

// testEnv is a fake backend plus the controller dependencies pointed at it.
type testEnv struct {
	deps  Deps
	store *session.Store
	nav   *recorder
	srv   *httptest.Server

	mu    sync.Mutex
	calls []string
}

func newEnv(t *testing.T, h http.HandlerFunc) *testEnv {
	t.Helper()

	mem, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { mem.Close() })

	e := &testEnv{store: session.NewStore(mem), nav: &recorder{}}
	e.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.mu.Lock()
		e.calls = append(e.calls, r.Method+" "+r.URL.Path)
		e.mu.Unlock()
		if h == nil {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(e.srv.Close)

	e.deps = Deps{
		API:      api.New(e.srv.URL, e.store),
		Sessions: e.store,
		Nav:      e.nav,
		Logger:   log.New(io.Discard, "", 0),
	}
	return e
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	if err := e.store.Login(context.Background(), "tok-1", "alice"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func (e *testEnv) requests() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *testEnv) assertNoRequests(t *testing.T) {
	t.Helper()
	if got := e.requests(); len(got) != 0 {
		t.Errorf("expected no requests, got %v", got)
	}
}

func (e *testEnv) authenticated(t *testing.T) bool {
	t.Helper()
	ok, err := e.store.IsAuthenticated(context.Background())
	if err != nil {
		t.Fatalf("IsAuthenticated: %v", err)
	}
	return ok
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// userMessage returns the text a page would show for err.
func userMessage(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}

func assertValidation(t *testing.T, err error, want string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if ve.Message != want {
		t.Errorf("message = %q, want %q", ve.Message, want)
	}
}

// assertExpired checks the handling of a 401 on an authenticated call.
func assertExpired(t *testing.T, e *testEnv, err error) {
	t.Helper()
	if got := userMessage(t, err); got != "认证已过期，请重新登录" {
		t.Errorf("message = %q", got)
	}
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Error("expected the error to match api.ErrUnauthorized")
	}
	if e.authenticated(t) {
		t.Error("session should be cleared after a 401")
	}
	navs := e.nav.all()
	if len(navs) != 1 || navs[0].Page != PageLogin || navs[0].After != ExpiredRedirectDelay {
		t.Errorf("navigations = %+v, want login after %v", navs, ExpiredRedirectDelay)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12", 12, true},
		{" 3 ", 3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-4", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if tt.ok {
			if err != nil || got != tt.want {
				t.Errorf("ParseID(%q) = %d, %v", tt.in, got, err)
			}
			continue
		}
		assertValidation(t, err, "无效的知识库ID")
	}
}

func TestExpiredSessionOnEveryPage(t *testing.T) {
	cv := &api.File{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.4")}
	yes := func(string) (bool, error) { return true, nil }

	tests := []struct {
		name string
		call func(ctx context.Context, d Deps) error
	}{
		{"profile show", func(ctx context.Context, d Deps) error {
			_, err := NewProfile(d).Show(ctx)
			return err
		}},
		{"change password", func(ctx context.Context, d Deps) error {
			_, err := NewProfile(d).ChangePassword(ctx, "old", "new", "new")
			return err
		}},
		{"knowledge base show", func(ctx context.Context, d Deps) error {
			_, err := NewKnowledgeBase(d).Show(ctx, 7)
			return err
		}},
		{"add text", func(ctx context.Context, d Deps) error {
			_, err := NewKnowledgeBase(d).AddText(ctx, 7, "文档")
			return err
		}},
		{"add resume", func(ctx context.Context, d Deps) error {
			_, err := NewKnowledgeBase(d).AddResume(ctx, 7, cv)
			return err
		}},
		{"query", func(ctx context.Context, d Deps) error {
			_, err := NewKnowledgeBase(d).Query(ctx, 7, "问题")
			return err
		}},
		{"history", func(ctx context.Context, d Deps) error {
			_, err := NewHistory(d).Show(ctx, 7)
			return err
		}},
		{"create", func(ctx context.Context, d Deps) error {
			_, err := NewKnowledge(d).Create(ctx, "kb", "")
			return err
		}},
		{"delete", func(ctx context.Context, d Deps) error {
			_, err := NewKnowledge(d).Delete(ctx, 7, yes)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
			})
			e.login(t)

			err := tt.call(context.Background(), e.deps)
			assertExpired(t, e, err)
		})
	}
}
