package api

import (
	"context"
	"fmt"
	"net/http"
)

type createKnowledgeBaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type queryRequest struct {
	Question        string `json:"question"`
	KnowledgeBaseID int64  `json:"knowledge_base_id"`
}

// ListKnowledgeBases returns every knowledge base of the logged-in user.
func (c *Client) ListKnowledgeBases(ctx context.Context) ([]KnowledgeBase, error) {
	return c.listKnowledgeBases(ctx, "/knowledge-bases")
}

// ListMultiKnowledgeBases is ListKnowledgeBases under the /multi-knowledge
// mount, which the history view uses.
func (c *Client) ListMultiKnowledgeBases(ctx context.Context) ([]KnowledgeBase, error) {
	return c.listKnowledgeBases(ctx, "/multi-knowledge/knowledge-bases")
}

func (c *Client) listKnowledgeBases(ctx context.Context, path string) ([]KnowledgeBase, error) {
	var kbs []KnowledgeBase
	if err := c.getJSON(ctx, path, &kbs); err != nil {
		return nil, err
	}
	if kbs == nil {
		kbs = []KnowledgeBase{}
	}
	return kbs, nil
}

// CreateKnowledgeBase creates a knowledge base.
func (c *Client) CreateKnowledgeBase(ctx context.Context, name, description string) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	req := createKnowledgeBaseRequest{Name: name, Description: description}
	if err := c.sendJSON(ctx, http.MethodPost, "/knowledge-bases", true, req, &kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

// DeleteKnowledgeBase deletes knowledge base id.
func (c *Client) DeleteKnowledgeBase(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/knowledge-bases/%d", id),
		auth:   true,
	}, nil)
}

// AddDocuments adds text documents to knowledge base id.
func (c *Client) AddDocuments(ctx context.Context, id int64, docs []string) error {
	path := fmt.Sprintf("/knowledge-bases/%d/documents/add", id)
	return c.sendJSON(ctx, http.MethodPost, path, true, documentsRequest{Documents: docs}, nil)
}

// QueryKnowledgeBase asks knowledge base id a question.
func (c *Client) QueryKnowledgeBase(ctx context.Context, id int64, question string) (*QueryResult, error) {
	var res QueryResult
	path := fmt.Sprintf("/knowledge-bases/%d/query", id)
	req := queryRequest{Question: question, KnowledgeBaseID: id}
	if err := c.sendJSON(ctx, http.MethodPost, path, true, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// QueryHistory returns the past questions asked of knowledge base id.
func (c *Client) QueryHistory(ctx context.Context, id int64) ([]QueryHistoryEntry, error) {
	var entries []QueryHistoryEntry
	path := fmt.Sprintf("/multi-knowledge/knowledge-bases/history/%d", id)
	if err := c.getJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
