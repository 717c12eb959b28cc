package pages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/resume"
)

func pdfFile() *api.File {
	return &api.File{Name: "cv.pdf", ContentType: resume.MIMEPDF, Data: []byte("%PDF-1.4 fake")}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	e := newEnv(t, nil)
	e.login(t)

	f := &api.File{Name: "cv.txt", ContentType: "text/plain", Data: []byte("hello")}
	_, err := NewInterview(e.deps).Upload(context.Background(), NewChatState(), f)
	assertValidation(t, err, "只支持PDF和DOCX格式的文件")
	e.assertNoRequests(t)
}

func TestUploadRequiresFile(t *testing.T) {
	e := newEnv(t, nil)
	e.login(t)

	_, err := NewInterview(e.deps).Upload(context.Background(), NewChatState(), nil)
	assertValidation(t, err, "请选择一个文件")
	e.assertNoRequests(t)
}

func TestUploadRequiresLogin(t *testing.T) {
	e := newEnv(t, nil)

	_, err := NewInterview(e.deps).Upload(context.Background(), NewChatState(), pdfFile())
	if !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("err = %v, want ErrLoginRequired", err)
	}
	e.assertNoRequests(t)
}

func TestUploadSuccess(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/resume/parse":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("ParseMultipartForm: %v", err)
			}
			_, hdr, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("FormFile: %v", err)
			}
			if hdr.Header.Get("Content-Type") != resume.MIMEPDF {
				t.Errorf("part content type = %q", hdr.Header.Get("Content-Type"))
			}
			writeJSON(w, http.StatusOK, `{"status":"success","data":{
				"name":"张三","email":"z@example.com",
				"skills":["Go","SQL"],
				"experience":[{"company":"ACME","duration":"2020-2023"}]
			}}`)
		case "/knowledge/user/documents/add_from_resume":
			writeJSON(w, http.StatusOK, `{"status":"success"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	e.login(t)

	state := NewChatState()
	res, err := NewInterview(e.deps).Upload(context.Background(), state, pdfFile())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.Status != "简历上传和分析成功!" {
		t.Errorf("status = %q", res.Status)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if state.Resume == nil || state.Resume.Name != "张三" {
		t.Errorf("state.Resume = %+v", state.Resume)
	}

	want := []string{"POST /resume/parse", "POST /knowledge/user/documents/add_from_resume"}
	got := e.requests()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("requests = %v, want %v", got, want)
	}

	for _, s := range []string{"基本信息", "电话: 未提供", "技能", "Go | SQL", "工作经验", "职位未提供 at ACME", "2020-2023"} {
		if !strings.Contains(res.View, s) {
			t.Errorf("view missing %q:\n%s", s, res.View)
		}
	}
	if strings.Contains(res.View, "教育背景") {
		t.Errorf("empty education section rendered:\n%s", res.View)
	}
}

func TestUploadKnowledgeFailureIsWarning(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/resume/parse" {
			writeJSON(w, http.StatusOK, `{"status":"success","data":{"name":"李四"}}`)
			return
		}
		writeJSON(w, http.StatusInternalServerError, `{"detail":"向量库不可用"}`)
	})
	e.login(t)

	state := NewChatState()
	res, err := NewInterview(e.deps).Upload(context.Background(), state, pdfFile())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "向量库不可用") {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if state.Resume == nil {
		t.Error("analysis should be kept when only the knowledge-base add fails")
	}
}

func TestUploadServerError(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"detail":"无法解析文件"}`)
	})
	e.login(t)

	state := NewChatState()
	_, err := NewInterview(e.deps).Upload(context.Background(), state, pdfFile())
	if got := userMessage(t, err); got != "错误: 无法解析文件" {
		t.Errorf("message = %q", got)
	}
	if state.Resume != nil {
		t.Error("state.Resume set after a failed upload")
	}
	if n := len(e.requests()); n != 1 {
		t.Errorf("knowledge-base add should not follow a failed parse, got %d requests", n)
	}
}

func TestUploadExpired(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)
	})
	e.login(t)

	_, err := NewInterview(e.deps).Upload(context.Background(), NewChatState(), pdfFile())
	assertExpired(t, e, err)
}

func TestChatSendsHistoryAndResume(t *testing.T) {
	var got api.ChatRequest
	var docs []string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/knowledge/user/documents/add":
			var body struct {
				Documents []string `json:"documents"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			docs = body.Documents
			writeJSON(w, http.StatusOK, `{}`)
		case "/chat/completion":
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decoding chat request: %v", err)
			}
			writeJSON(w, http.StatusOK, `{"message":{"role":"assistant","content":"请介绍一个项目"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	e.login(t)

	state := NewChatState()
	state.Resume = &api.ResumeAnalysis{Name: "张三"}
	state.Transcript.Append(api.RoleUser, "你好")
	state.Transcript.Append(api.RoleAssistant, "您好")

	reply, err := NewInterview(e.deps).Chat(context.Background(), state, "  我准备好了  ")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Role != api.RoleAssistant || reply.Content != "请介绍一个项目" {
		t.Errorf("reply = %+v", reply)
	}

	if len(got.Messages) != 3 {
		t.Fatalf("payload has %d messages, want 3: %+v", len(got.Messages), got.Messages)
	}
	last := got.Messages[2]
	if last.Role != api.RoleUser || last.Content != "我准备好了" {
		t.Errorf("last message = %+v", last)
	}
	if got.ResumeData == nil || got.ResumeData.Name != "张三" {
		t.Errorf("resume_data = %+v", got.ResumeData)
	}
	if len(docs) != 1 || docs[0] != "我准备好了" {
		t.Errorf("personal knowledge documents = %v", docs)
	}
	if state.Transcript.Len() != 4 {
		t.Errorf("transcript length = %d, want 4", state.Transcript.Len())
	}
}

func TestChatKnowledgeFailureIgnored(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat/completion" {
			writeJSON(w, http.StatusOK, `{"message":{"role":"assistant","content":"好的"}}`)
			return
		}
		writeJSON(w, http.StatusInternalServerError, `{"detail":"down"}`)
	})
	e.login(t)

	reply, err := NewInterview(e.deps).Chat(context.Background(), NewChatState(), "hi")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Content != "好的" {
		t.Errorf("reply = %+v", reply)
	}
}

func TestChatBlankInputIgnored(t *testing.T) {
	e := newEnv(t, nil)
	e.login(t)

	state := NewChatState()
	reply, err := NewInterview(e.deps).Chat(context.Background(), state, "   ")
	if err != nil || reply != nil {
		t.Errorf("Chat = %v, %v", reply, err)
	}
	if state.Transcript.Len() != 0 {
		t.Error("blank input recorded")
	}
	e.assertNoRequests(t)
}

func TestChatRequiresLogin(t *testing.T) {
	e := newEnv(t, nil)

	_, err := NewInterview(e.deps).Chat(context.Background(), NewChatState(), "hi")
	if got := userMessage(t, err); got != "请先登录" {
		t.Errorf("message = %q", got)
	}
	e.assertNoRequests(t)
}

func TestChatServerError(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat/completion" {
			writeJSON(w, http.StatusInternalServerError, `{"detail":"模型超时"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{}`)
	})
	e.login(t)

	state := NewChatState()
	_, err := NewInterview(e.deps).Chat(context.Background(), state, "hi")
	if got := userMessage(t, err); got != "错误: 模型超时" {
		t.Errorf("message = %q", got)
	}
	if state.Transcript.Len() != 1 {
		t.Errorf("transcript length = %d, want only the user message", state.Transcript.Len())
	}
}

func TestChatExpired(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat/completion" {
			writeJSON(w, http.StatusUnauthorized, `{"detail":"expired"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{}`)
	})
	e.login(t)

	_, err := NewInterview(e.deps).Chat(context.Background(), NewChatState(), "hi")
	assertExpired(t, e, err)
}

func TestInterviewQuestion(t *testing.T) {
	var got api.ChatRequest
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/interview_question" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, `{"message":{"role":"assistant","content":"说说你的优势"}}`)
	})
	e.login(t)

	state := NewChatState()
	state.Transcript.Append(api.RoleUser, "开始吧")
	msg, err := NewInterview(e.deps).InterviewQuestion(context.Background(), state)
	if err != nil {
		t.Fatalf("InterviewQuestion: %v", err)
	}
	if msg.Content != "说说你的优势" {
		t.Errorf("msg = %+v", msg)
	}
	if len(got.Messages) != 1 {
		t.Errorf("payload = %+v", got.Messages)
	}
	if state.Transcript.Len() != 2 {
		t.Errorf("transcript length = %d", state.Transcript.Len())
	}
}
