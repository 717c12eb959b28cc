package pages

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// History drives the query history page.
type History struct {
	base
}

// NewHistory creates the query history controller.
func NewHistory(d Deps) *History {
	return &History{base{d}}
}

// Show renders the past questions asked of a knowledge base, under a
// title naming the base.
func (h *History) Show(ctx context.Context, id int64) (*Result, error) {
	if _, err := h.requireSession(ctx); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	title, err := h.title(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := h.API.QueryHistory(ctx, id)
	if err != nil {
		if e := h.expired(ctx, err); e != nil {
			return nil, e
		}
		if _, ok := transportCause(err); ok {
			h.logf("pages: loading query history for %d: %v", id, err)
			return nil, fail(err, "加载查询历史时出错")
		}
		return nil, fail(err, "加载查询历史失败")
	}

	view, err := render("history", struct {
		Title   string
		Entries []api.QueryHistoryEntry
	}{title, entries})
	if err != nil {
		return nil, err
	}
	return &Result{View: view}, nil
}

// title names the page after the knowledge base. Lookup failures become
// the title text rather than failing the page; only an expired session
// stops it.
func (h *History) title(ctx context.Context, id int64) (string, error) {
	kbs, err := h.API.ListMultiKnowledgeBases(ctx)
	if err != nil {
		if e := h.expired(ctx, err); e != nil {
			return "", e
		}
		if _, ok := transportCause(err); ok {
			h.logf("pages: loading knowledge base %d: %v", id, err)
			return "加载知识库信息时出错", nil
		}
		return "加载知识库信息失败", nil
	}
	kb := findKnowledgeBase(kbs, id)
	if kb == nil {
		return msgKBNotFound, nil
	}
	return fmt.Sprintf("%s - 查询历史", kb.Name), nil
}
