package api

import (
	"context"
	"net/http"
)

// ChatRequest is the chat completion payload. ResumeData is sent as null
// when no résumé has been analysed.
type ChatRequest struct {
	Messages   []ChatMessage   `json:"messages"`
	ResumeData *ResumeAnalysis `json:"resume_data"`
}

type chatResponse struct {
	Message ChatMessage `json:"message"`
}

type documentsRequest struct {
	Documents []string `json:"documents"`
}

// ChatCompletion returns the assistant's reply to the conversation.
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatMessage, error) {
	var resp chatResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/chat/completion", true, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Message, nil
}

// InterviewQuestion asks the backend for an interview question tailored to
// the résumé in req.
func (c *Client) InterviewQuestion(ctx context.Context, req ChatRequest) (*ChatMessage, error) {
	var resp chatResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/chat/interview_question", true, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Message, nil
}

// AddPersonalDocuments adds text documents to the user's personal knowledge base.
func (c *Client) AddPersonalDocuments(ctx context.Context, docs []string) error {
	return c.sendJSON(ctx, http.MethodPost, "/knowledge/user/documents/add", true, documentsRequest{Documents: docs}, nil)
}
