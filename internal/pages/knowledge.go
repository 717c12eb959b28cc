package pages

import (
	"context"
	"strings"

	"github.com/ziadkadry99/interview-assistant/internal/api"
)

// DeleteConfirmation is asked before a knowledge base is deleted.
const DeleteConfirmation = "确定要删除这个知识库吗？此操作不可撤销。"

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Knowledge drives the knowledge-base list page.
type Knowledge struct {
	base
}

// NewKnowledge creates the knowledge-base list controller.
func NewKnowledge(d Deps) *Knowledge {
	return &Knowledge{base{d}}
}

// List renders the user's knowledge bases. An empty list is a normal
// result with an empty-state view.
func (k *Knowledge) List(ctx context.Context) (*Result, error) {
	if _, err := k.requireSession(ctx); err != nil {
		return nil, err
	}
	return k.list(ctx)
}

func (k *Knowledge) list(ctx context.Context) (*Result, error) {
	kbs, err := k.API.ListKnowledgeBases(ctx)
	if err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		if _, ok := transportCause(err); ok {
			k.logf("pages: loading knowledge bases: %v", err)
			return nil, fail(err, "加载知识库列表时出错")
		}
		return nil, fail(err, "加载知识库列表失败")
	}

	view, err := render("knowledge-list", kbs)
	if err != nil {
		return nil, err
	}
	return &Result{View: view}, nil
}

// Create adds a knowledge base and returns the reloaded list.
func (k *Knowledge) Create(ctx context.Context, name, description string) (*Result, error) {
	if _, err := k.requireSession(ctx); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, invalid("请输入知识库名称")
	}

	if _, err := k.API.CreateKnowledgeBase(ctx, name, description); err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		return nil, prefixed(err, "创建失败")
	}

	return k.reload(ctx, "知识库创建成功！"), nil
}

// Delete removes a knowledge base once confirm agrees, and returns the
// reloaded list. A declined confirmation sends nothing and returns
// ErrCancelled.
func (k *Knowledge) Delete(ctx context.Context, id int64, confirm ConfirmFunc) (*Result, error) {
	if _, err := k.requireSession(ctx); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	ok, err := confirm(DeleteConfirmation)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}

	if err := k.API.DeleteKnowledgeBase(ctx, id); err != nil {
		if e := k.expired(ctx, err); e != nil {
			return nil, e
		}
		return nil, prefixed(err, "删除失败")
	}

	return k.reload(ctx, ""), nil
}

// reload lists the knowledge bases after a change. A failed reload does
// not undo the change, so it is reported as a warning.
func (k *Knowledge) reload(ctx context.Context, status string) *Result {
	res, err := k.list(ctx)
	if err != nil {
		return &Result{Status: status, Warnings: []string{err.Error()}}
	}
	res.Status = status
	return res
}

// Open sends the user to the detail page of a knowledge base.
func (k *Knowledge) Open(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	k.navigate(ctx, Navigation{Page: PageKBDetail, KnowledgeBaseID: id})
	return nil
}

// findKnowledgeBase returns the entry with the given id, or nil.
func findKnowledgeBase(kbs []api.KnowledgeBase, id int64) *api.KnowledgeBase {
	for i := range kbs {
		if kbs[i].ID == id {
			return &kbs[i]
		}
	}
	return nil
}
