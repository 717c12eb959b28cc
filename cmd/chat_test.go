package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/config"
	"github.com/ziadkadry99/interview-assistant/internal/db"
	"github.com/ziadkadry99/interview-assistant/internal/pages"
	"github.com/ziadkadry99/interview-assistant/internal/session"
	"github.com/ziadkadry99/interview-assistant/internal/ui"
)

func newTestApp(t *testing.T, h http.HandlerFunc) (*app, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	mem, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	sessions := session.NewStore(mem)
	if err := sessions.Login(context.Background(), "tok", "alice"); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	printer := &ui.Printer{Out: &out, Err: &errOut}
	client := api.New(srv.URL, sessions)

	cfg := config.DefaultConfig()
	cfg.Chat.ExportDir = t.TempDir()

	nav := &ui.Navigator{Printer: printer, NoWait: true}
	a := &app{
		cfg:      cfg,
		db:       mem,
		sessions: sessions,
		client:   client,
		printer:  printer,
		nav:      nav,
		deps: pages.Deps{
			API:      client,
			Sessions: sessions,
			Nav:      nav,
		},
	}
	t.Cleanup(func() { a.Close() })
	return a, &out, &errOut
}

func chatBackend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/chat/completion":
		io.WriteString(w, `{"message":{"role":"assistant","content":"请介绍一下你最近的项目"}}`)
	case "/chat/interview_question":
		io.WriteString(w, `{"message":{"role":"assistant","content":"你为什么选择Go?"}}`)
	default:
		io.WriteString(w, `{}`)
	}
}

func TestChatLoopAndExport(t *testing.T) {
	a, out, _ := newTestApp(t, chatBackend)
	export := filepath.Join(t.TempDir(), "chat.html")

	in := strings.NewReader("你好\n\n/question\n/exit\n")
	state := pages.NewChatState()
	if err := a.chatLoop(context.Background(), in, state, export); err != nil {
		t.Fatalf("chatLoop: %v", err)
	}

	if state.Transcript.Len() != 3 {
		t.Errorf("transcript length = %d, want 3", state.Transcript.Len())
	}
	for _, s := range []string{"AI助手 - ", "请介绍一下你最近的项目", "你为什么选择Go?"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}

	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), "你好") || !strings.Contains(string(data), "你为什么选择Go?") {
		t.Errorf("export missing messages:\n%s", data)
	}
}

func TestChatLoopExportCommandUsesExportDir(t *testing.T) {
	a, _, _ := newTestApp(t, chatBackend)

	in := strings.NewReader("你好\n/export\n")
	if err := a.chatLoop(context.Background(), in, pages.NewChatState(), ""); err != nil {
		t.Fatalf("chatLoop: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(a.cfg.Chat.ExportDir, "interview-*.html"))
	if len(matches) != 1 {
		t.Errorf("exported files = %v", matches)
	}
}

func TestChatLoopStopsWhenSessionExpires(t *testing.T) {
	a, _, errOut := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat/completion" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{}`))
	})

	in := strings.NewReader("你好\n还在吗\n")
	state := pages.NewChatState()
	if err := a.chatLoop(context.Background(), in, state, ""); err != nil {
		t.Fatalf("chatLoop: %v", err)
	}
	if !strings.Contains(errOut.String(), "认证已过期，请重新登录") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if state.Transcript.Len() != 1 {
		t.Errorf("loop continued after expiry: %d messages", state.Transcript.Len())
	}
	ok, _ := a.sessions.IsAuthenticated(context.Background())
	if ok {
		t.Error("session not cleared")
	}
}

func TestResultPrinting(t *testing.T) {
	a, out, errOut := newTestApp(t, chatBackend)

	err := a.result(&pages.Result{Status: "知识库创建成功！", Warnings: []string{"w"}, View: "[1] kb\n"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "知识库创建成功！\n[1] kb\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errOut.String() != "WARNING: w\n" {
		t.Errorf("stderr = %q", errOut.String())
	}

	errOut.Reset()
	if err := a.result(nil, &pages.ValidationError{Message: "请输入问题"}); err != errReported {
		t.Errorf("err = %v, want errReported", err)
	}
	if errOut.String() != "请输入问题\n" {
		t.Errorf("stderr = %q", errOut.String())
	}

	if err := a.result(nil, pages.ErrCancelled); err != nil {
		t.Errorf("cancel should not fail the command: %v", err)
	}
}

func TestStatusPrintedBeforeNavigationHint(t *testing.T) {
	a, _, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			io.WriteString(w, `{"access_token":"tok-2","token_type":"bearer"}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	var combined bytes.Buffer
	a.printer.Out = &combined
	a.printer.Err = &combined

	res, err := pages.NewAuth(a.deps).Login(context.Background(), "alice", "secret")
	if !a.nav.Pending() {
		t.Fatal("login should leave its navigation pending")
	}
	if combined.Len() != 0 {
		t.Fatalf("printed before the result was shown: %q", combined.String())
	}
	if err := a.result(res, err); err != nil {
		t.Fatalf("result: %v", err)
	}
	assertOrder(t, combined.String(), "登录成功！正在跳转...", "继续: interview resume upload")

	combined.Reset()
	_, err = pages.NewProfile(a.deps).Show(context.Background())
	if rerr := a.result(nil, err); rerr != errReported {
		t.Fatalf("result error = %v, want errReported", rerr)
	}
	assertOrder(t, combined.String(), "认证已过期，请重新登录", "请登录: interview auth login")
}

func assertOrder(t *testing.T, out, first, second string) {
	t.Helper()
	i, j := strings.Index(out, first), strings.Index(out, second)
	if i < 0 || j < 0 {
		t.Fatalf("output missing %q or %q:\n%s", first, second, out)
	}
	if i > j {
		t.Errorf("%q printed after %q:\n%s", first, second, out)
	}
}
