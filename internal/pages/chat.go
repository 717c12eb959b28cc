package pages

import (
	"context"
	"strings"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/resume"
	"github.com/ziadkadry99/interview-assistant/internal/transcript"
)

// Status shown while an upload is in flight.
const StatusUploading = "正在上传和分析简历..."

const msgTypeNotAllowed = "只支持PDF和DOCX格式的文件"

// ChatState is the per-session state of the upload and chat page.
type ChatState struct {
	// Resume is the latest analysis; nil until an upload succeeds.
	Resume     *api.ResumeAnalysis
	Transcript *transcript.Transcript
}

// NewChatState returns an empty state.
func NewChatState() *ChatState {
	return &ChatState{Transcript: transcript.New()}
}

// Reset forgets the analysis and the conversation.
func (s *ChatState) Reset() {
	s.Resume = nil
	s.Transcript.Reset()
}

// Interview drives résumé upload and the interview chat.
type Interview struct {
	base
}

// NewInterview creates the upload and chat controller.
func NewInterview(d Deps) *Interview {
	return &Interview{base{d}}
}

// checkFile applies the local checks shared by every résumé upload.
func checkFile(f *api.File) error {
	if f == nil || len(f.Data) == 0 {
		return invalid("请选择一个文件")
	}
	if !resume.Allowed(f.ContentType) {
		return invalid(msgTypeNotAllowed)
	}
	return nil
}

// Upload sends a résumé for analysis, then adds it to the personal
// knowledge base. The second step is best-effort: its failure becomes a
// warning on an otherwise successful result.
func (c *Interview) Upload(ctx context.Context, state *ChatState, f *api.File) (*Result, error) {
	if err := c.requireToken(ctx); err != nil {
		return nil, err
	}
	if err := checkFile(f); err != nil {
		return nil, err
	}

	analysis, err := c.API.ParseResume(ctx, *f)
	if err != nil {
		if e := c.expired(ctx, err); e != nil {
			return nil, e
		}
		if cause, ok := transportCause(err); ok {
			c.logf("pages: uploading résumé: %v", err)
			return nil, fail(err, "上传失败: "+cause)
		}
		return nil, fail(err, "错误: "+serverMessage(err))
	}

	res := &Result{Status: "简历上传和分析成功!"}
	if err := c.API.AddResumeToPersonalKnowledge(ctx, *f); err != nil {
		c.logf("pages: adding résumé to personal knowledge base: %v", err)
		res.Warnings = append(res.Warnings, "添加到知识库失败: "+errorText(err))
	}

	state.Resume = analysis
	view, err := render("analysis", analysis)
	if err != nil {
		return nil, err
	}
	res.View = view
	return res, nil
}

// Chat posts text to the interview chat and returns the assistant's reply.
// Blank input is ignored and yields a nil message. Failed requests leave
// the user's message in the transcript but record no reply.
func (c *Interview) Chat(ctx context.Context, state *ChatState, text string) (*transcript.Message, error) {
	if err := c.requireToken(ctx); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	payload := state.Transcript.Payload(text)
	state.Transcript.Append(api.RoleUser, text)

	if err := c.API.AddPersonalDocuments(ctx, []string{text}); err != nil {
		c.logf("pages: adding message to personal knowledge base: %v", err)
	}

	reply, err := c.API.ChatCompletion(ctx, api.ChatRequest{Messages: payload, ResumeData: state.Resume})
	if err != nil {
		return nil, c.chatFailure(ctx, err)
	}
	msg := state.Transcript.Append(api.RoleAssistant, reply.Content)
	return &msg, nil
}

// InterviewQuestion asks the backend for the next interview question given
// the conversation so far.
func (c *Interview) InterviewQuestion(ctx context.Context, state *ChatState) (*transcript.Message, error) {
	if err := c.requireToken(ctx); err != nil {
		return nil, err
	}

	reply, err := c.API.InterviewQuestion(ctx, api.ChatRequest{
		Messages:   state.Transcript.History(),
		ResumeData: state.Resume,
	})
	if err != nil {
		return nil, c.chatFailure(ctx, err)
	}
	msg := state.Transcript.Append(api.RoleAssistant, reply.Content)
	return &msg, nil
}

func (c *Interview) chatFailure(ctx context.Context, err error) error {
	if e := c.expired(ctx, err); e != nil {
		return e
	}
	if cause, ok := transportCause(err); ok {
		c.logf("pages: chat request: %v", err)
		return fail(err, "请求失败: "+cause)
	}
	return fail(err, "错误: "+serverMessage(err))
}
