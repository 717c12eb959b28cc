package api

import (
	"context"
	"fmt"
)

// File is an upload held in memory so it can be sent more than once.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type parseResumeResponse struct {
	Status string         `json:"status"`
	Data   ResumeAnalysis `json:"data"`
}

// ParseResume sends a résumé to the parser and returns the structured record.
func (c *Client) ParseResume(ctx context.Context, f File) (*ResumeAnalysis, error) {
	var resp parseResumeResponse
	if err := c.sendFile(ctx, "/resume/parse", f, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AddResumeToPersonalKnowledge adds a résumé to the user's personal knowledge base.
func (c *Client) AddResumeToPersonalKnowledge(ctx context.Context, f File) error {
	return c.sendFile(ctx, "/knowledge/user/documents/add_from_resume", f, nil)
}

// AddResumeToKnowledgeBase adds a résumé to knowledge base id.
func (c *Client) AddResumeToKnowledgeBase(ctx context.Context, id int64, f File) error {
	return c.sendFile(ctx, fmt.Sprintf("/knowledge-bases/%d/documents/add_from_resume", id), f, nil)
}
